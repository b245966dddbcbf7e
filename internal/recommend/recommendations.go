package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"cinemate/internal/tmdb"
	"cinemate/pkg/prompts"
)

const trendingWindow = "day"

// Recommendations answers a prompt or filter set with up to five movies. It walks
// catalog candidates, then the model, then today's trending titles, and returns an
// empty slice only when all three come up empty.
func (s *Service) Recommendations(ctx context.Context, params Params) []Recommendation {
	const operation = "recommendations"

	request := recommendationRequest(params)
	tiers := []tier[Recommendation]{
		{name: "catalog", run: func(ctx context.Context) ([]Recommendation, error) {
			return s.catalogRecommendations(ctx, params, request)
		}},
		{name: "generative", run: func(ctx context.Context) ([]Recommendation, error) {
			return s.generativeRecommendations(ctx, request)
		}},
		{name: "trending", run: s.trendingRecommendations},
	}

	recs, source, err := firstNonEmpty(ctx, operation, tiers)
	if len(recs) == 0 {
		slog.Error("No recommendations available", "operation", operation, "error", err)
		return []Recommendation{}
	}

	slog.Info("Recommendations ready", "source", source, "count", len(recs))
	return recs
}

// recommendationRequest builds the natural-language request. A prompt is used as
// given; filter clauses always appear in the order genre, mood, era, actors,
// directors, similar titles.
func recommendationRequest(p Params) string {
	if strings.TrimSpace(p.Prompt) != "" {
		return p.Prompt
	}

	var b strings.Builder
	b.WriteString("Recommend 5 movies")
	if p.Genre != "" {
		fmt.Fprintf(&b, " in the %s genre", p.Genre)
	}
	if p.Mood != "" {
		fmt.Fprintf(&b, " that are %s", p.Mood)
	}
	if p.Era != "" {
		fmt.Fprintf(&b, " from the %s", p.Era)
	}
	if len(p.Actors) > 0 {
		fmt.Fprintf(&b, " starring %s", strings.Join(p.Actors, " or "))
	}
	if len(p.Directors) > 0 {
		fmt.Fprintf(&b, " directed by %s", strings.Join(p.Directors, " or "))
	}
	if len(p.SimilarMovies) > 0 {
		fmt.Fprintf(&b, " similar to %s", strings.Join(p.SimilarMovies, ", "))
	}
	return b.String()
}

func (s *Service) catalogRecommendations(ctx context.Context, params Params, request string) ([]Recommendation, error) {
	movies, err := s.catalogCandidates(ctx, params)
	if len(movies) == 0 {
		return nil, err
	}

	mapped := make([]Recommendation, 0, len(movies))
	for _, m := range movies {
		mapped = append(mapped, Recommendation{
			Title:       m.Title,
			Year:        yearOf(m),
			Director:    unknown,
			Description: m.Overview,
			Reason: fmt.Sprintf("Popular with audiences right now (popularity %.1f) and rated %.1f/10 by viewers.",
				m.Popularity, m.VoteAverage),
			PosterPath: m.PosterPath,
			CatalogID:  m.ID,
		})
	}

	enriched, err := s.enrichReasons(ctx, mapped, request)
	if err != nil {
		slog.Warn("Reason enrichment failed, using catalog reasons", "error", err)
		return mapped, nil
	}
	if len(enriched) == 0 {
		return mapped, nil
	}
	return backfill(enriched, mapped), nil
}

// catalogCandidates gathers movies from the filter fields only. Sources are tried
// in order: genre, first similar title, then a search on the remaining filter text.
func (s *Service) catalogCandidates(ctx context.Context, p Params) ([]tmdb.Movie, error) {
	var errs []error

	if p.Genre != "" {
		movies, err := s.moviesInGenre(ctx, p.Genre)
		if err != nil {
			errs = append(errs, err)
		} else if len(movies) > 0 {
			return firstN(movies, maxResults), nil
		}
	}

	if len(p.SimilarMovies) > 0 {
		movies, err := s.moviesLike(ctx, p.SimilarMovies[0])
		if err != nil {
			errs = append(errs, err)
		} else if len(movies) > 0 {
			return firstN(movies, maxResults), nil
		}
	}

	if query := filterText(p); query != "" {
		list, err := s.catalog.Search(ctx, query, 1)
		if err != nil {
			errs = append(errs, fmt.Errorf("search %q: %w", query, err))
		} else if len(list.Results) > 0 {
			return firstN(list.Results, maxResults), nil
		}
	}

	return nil, errors.Join(errs...)
}

func (s *Service) moviesInGenre(ctx context.Context, name string) ([]tmdb.Movie, error) {
	genres, err := s.catalog.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	genre, ok := tmdb.FindGenre(genres, name)
	if !ok {
		slog.Debug("Genre not in catalog", "genre", name)
		return nil, nil
	}

	list, err := s.catalog.ByGenre(ctx, genre.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("discover genre %d: %w", genre.ID, err)
	}
	return list.Results, nil
}

func (s *Service) moviesLike(ctx context.Context, title string) ([]tmdb.Movie, error) {
	found, err := s.catalog.Search(ctx, title, 1)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}
	if len(found.Results) == 0 {
		return nil, nil
	}

	list, err := s.catalog.Recommendations(ctx, found.Results[0].ID, 1)
	if err != nil {
		return nil, fmt.Errorf("related to %d: %w", found.Results[0].ID, err)
	}
	return list.Results, nil
}

func filterText(p Params) string {
	var parts []string
	for _, s := range []string{p.Mood, p.Era} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, p.Actors...)
	parts = append(parts, p.Directors...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (s *Service) enrichReasons(ctx context.Context, recs []Recommendation, request string) ([]Recommendation, error) {
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode candidates: %w", err)
	}

	prompt, err := s.prompts.RenderEnrich(prompts.EnrichParams{Movies: string(data), Request: request})
	if err != nil {
		return nil, fmt.Errorf("render enrich prompt: %w", err)
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return records[Recommendation](text, "recommendations", "movies"), nil
}

// backfill restores catalog fields the model dropped, matching records by title.
func backfill(enriched, catalog []Recommendation) []Recommendation {
	fold := cases.Fold()
	byTitle := make(map[string]Recommendation, len(catalog))
	for _, r := range catalog {
		byTitle[fold.String(r.Title)] = r
	}

	for i := range enriched {
		src, ok := byTitle[fold.String(enriched[i].Title)]
		if !ok {
			continue
		}
		if enriched[i].PosterPath == "" {
			enriched[i].PosterPath = src.PosterPath
		}
		if enriched[i].CatalogID == 0 {
			enriched[i].CatalogID = src.CatalogID
		}
	}
	return enriched
}

func (s *Service) generativeRecommendations(ctx context.Context, request string) ([]Recommendation, error) {
	prompt, err := s.prompts.RenderRecommend(prompts.RecommendParams{Request: request})
	if err != nil {
		return nil, fmt.Errorf("render recommend prompt: %w", err)
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return records[Recommendation](text, "recommendations", "movies"), nil
}

func (s *Service) trendingRecommendations(ctx context.Context) ([]Recommendation, error) {
	list, err := s.catalog.Trending(ctx, trendingWindow, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}

	movies := firstN(list.Results, maxResults)
	recs := make([]Recommendation, 0, len(movies))
	for _, m := range movies {
		recs = append(recs, Recommendation{
			Title:       m.Title,
			Year:        yearOf(m),
			Director:    unknown,
			Description: m.Overview,
			Reason:      fmt.Sprintf("One of today's trending movies, rated %.1f/10 by viewers.", m.VoteAverage),
			PosterPath:  m.PosterPath,
			CatalogID:   m.ID,
		})
	}
	return recs, nil
}
