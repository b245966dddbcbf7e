package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"cinemate/internal/tmdb"
	"cinemate/pkg/prompts"
)

// EmotionSuggestions picks movies for a mood. Popular titles are fetched alongside the
// model call as a standby set. An error is returned only when nothing was found and
// the standby set could not be fetched either.
func (s *Service) EmotionSuggestions(ctx context.Context, emotion string) ([]EmotionSuggestion, error) {
	const operation = "emotion"

	var (
		popular    *tmdb.MovieList
		popularErr error
	)
	standby := make(chan struct{})
	go func() {
		defer close(standby)
		popular, popularErr = s.catalog.Popular(ctx, 1)
	}()

	standbyFailed := false
	tiers := []tier[EmotionSuggestion]{
		{name: "generative", run: func(ctx context.Context) ([]EmotionSuggestion, error) {
			prompt, err := s.prompts.RenderEmotion(prompts.EmotionParams{Emotion: emotion})
			if err != nil {
				return nil, fmt.Errorf("render emotion prompt: %w", err)
			}
			text, err := s.generate(ctx, prompt)
			if err != nil {
				return nil, err
			}
			return records[EmotionSuggestion](text, "movies", "suggestions"), nil
		}},
		{name: "popular", run: func(ctx context.Context) ([]EmotionSuggestion, error) {
			select {
			case <-standby:
			case <-ctx.Done():
				standbyFailed = true
				return nil, ctx.Err()
			}
			if popularErr != nil {
				standbyFailed = true
				return nil, fmt.Errorf("fetch popular: %w", popularErr)
			}
			return moodPicks(popular.Results, emotion), nil
		}},
	}

	items, source, err := firstNonEmpty(ctx, operation, tiers)
	if len(items) == 0 {
		slog.Error("No emotion suggestions available", "operation", operation, "emotion", emotion, "error", err)
		// A cancelled call may end before the standby set is consulted.
		if standbyFailed || ctx.Err() != nil {
			return []EmotionSuggestion{}, fmt.Errorf("suggest movies for %q: %w", emotion, err)
		}
		return []EmotionSuggestion{}, nil
	}

	slog.Info("Emotion suggestions ready", "source", source, "count", len(items))
	return items, nil
}

func moodPicks(movies []tmdb.Movie, emotion string) []EmotionSuggestion {
	movies = firstN(movies, maxResults)
	picks := make([]EmotionSuggestion, 0, len(movies))
	for _, m := range movies {
		picks = append(picks, EmotionSuggestion{
			Title:         m.Title,
			Year:          yearOf(m),
			Description:   m.Overview,
			EmotionReason: fmt.Sprintf("A widely loved crowd-pleaser that suits feeling %s.", emotion),
			PosterPath:    m.PosterPath,
			CatalogID:     m.ID,
		})
	}
	return picks
}
