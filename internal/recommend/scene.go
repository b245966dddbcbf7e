package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"cinemate/internal/tmdb"
	"cinemate/pkg/prompts"
)

const sceneKeywordMinLen = 5

// FindByScene looks for movies containing a described scene. The model and a
// catalog search run in parallel; popular titles are the last resort.
func (s *Service) FindByScene(ctx context.Context, description string) []SceneMatch {
	const operation = "scene"

	slog.Debug("Scene keywords", "keywords", sceneKeywords(description))

	var (
		modelText string
		modelErr  error
		searched  *tmdb.MovieList
		searchErr error
		group     errgroup.Group
	)
	group.Go(func() error {
		prompt, err := s.prompts.RenderScene(prompts.SceneParams{Description: description})
		if err != nil {
			modelErr = fmt.Errorf("render scene prompt: %w", err)
			return nil
		}
		modelText, modelErr = s.generate(ctx, prompt)
		return nil
	})
	group.Go(func() error {
		searched, searchErr = s.catalog.Search(ctx, description, 1)
		return nil
	})
	_ = group.Wait()

	tiers := []tier[SceneMatch]{
		{name: "generative", run: func(context.Context) ([]SceneMatch, error) {
			if modelErr != nil {
				return nil, modelErr
			}
			return records[SceneMatch](modelText, "movies", "matches"), nil
		}},
		{name: "search", run: func(context.Context) ([]SceneMatch, error) {
			if searchErr != nil {
				return nil, fmt.Errorf("search scene: %w", searchErr)
			}
			scene := fmt.Sprintf("May contain a scene like: %s", description)
			return sceneMatches(firstN(searched.Results, maxResults), scene), nil
		}},
		{name: "popular", run: func(ctx context.Context) ([]SceneMatch, error) {
			list, err := s.catalog.Popular(ctx, 1)
			if err != nil {
				return nil, fmt.Errorf("fetch popular: %w", err)
			}
			scene := "General interest pick: no movie matched the described scene."
			return sceneMatches(firstN(list.Results, maxGeneralPicks), scene), nil
		}},
	}

	matches, source, err := firstNonEmpty(ctx, operation, tiers)
	if len(matches) == 0 {
		slog.Error("No scene matches available", "operation", operation, "error", err)
		return []SceneMatch{}
	}

	slog.Info("Scene matches ready", "source", source, "count", len(matches))
	return matches
}

// sceneKeywords keeps words longer than four characters. Only used for logging.
func sceneKeywords(description string) []string {
	var keywords []string
	for _, word := range strings.Fields(description) {
		if utf8.RuneCountInString(word) >= sceneKeywordMinLen {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

func sceneMatches(movies []tmdb.Movie, scene string) []SceneMatch {
	matches := make([]SceneMatch, 0, len(movies))
	for _, m := range movies {
		matches = append(matches, SceneMatch{
			Title:            m.Title,
			Year:             yearOf(m),
			SceneDescription: scene,
			MovieContext:     m.Overview,
			PosterPath:       m.PosterPath,
			CatalogID:        m.ID,
		})
	}
	return matches
}
