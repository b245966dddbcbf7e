package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cinemate/internal/tmdb"
)

var errUpstream = errors.New("upstream unavailable")

type fakeCatalog struct {
	mu sync.Mutex

	trending    []tmdb.Movie
	trendingErr error
	popular     []tmdb.Movie
	popularErr  error
	search      map[string][]tmdb.Movie
	searchErr   error
	genres      []tmdb.Genre
	genresErr   error
	byGenre     map[int][]tmdb.Movie
	related     map[int][]tmdb.Movie

	calls    []string
	searched []string
}

func (f *fakeCatalog) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCatalog) called(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) Trending(_ context.Context, _ string, _ int) (*tmdb.MovieList, error) {
	f.record("trending")
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	return &tmdb.MovieList{Page: 1, Results: f.trending}, nil
}

func (f *fakeCatalog) Popular(_ context.Context, _ int) (*tmdb.MovieList, error) {
	f.record("popular")
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	return &tmdb.MovieList{Page: 1, Results: f.popular}, nil
}

func (f *fakeCatalog) Search(_ context.Context, query string, _ int) (*tmdb.MovieList, error) {
	f.record("search")
	f.mu.Lock()
	f.searched = append(f.searched, query)
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &tmdb.MovieList{Page: 1, Results: f.search[query]}, nil
}

func (f *fakeCatalog) Genres(_ context.Context) ([]tmdb.Genre, error) {
	f.record("genres")
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return f.genres, nil
}

func (f *fakeCatalog) ByGenre(_ context.Context, genreID, _ int) (*tmdb.MovieList, error) {
	f.record("byGenre")
	return &tmdb.MovieList{Page: 1, Results: f.byGenre[genreID]}, nil
}

func (f *fakeCatalog) Recommendations(_ context.Context, movieID, _ int) (*tmdb.MovieList, error) {
	f.record("recommendations")
	return &tmdb.MovieList{Page: 1, Results: f.related[movieID]}, nil
}

// failingCatalog returns errUpstream from every endpoint.
func failingCatalog() *fakeCatalog {
	return &fakeCatalog{
		trendingErr: errUpstream,
		popularErr:  errUpstream,
		searchErr:   errUpstream,
		genresErr:   errUpstream,
	}
}

type fakeLLM struct {
	mu      sync.Mutex
	respond func(prompt string) (string, error)
	prompts []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(prompt)
}

func replyWith(text string) *fakeLLM {
	return &fakeLLM{respond: func(string) (string, error) { return text, nil }}
}

func failingLLM() *fakeLLM {
	return &fakeLLM{respond: func(string) (string, error) { return "", errUpstream }}
}

func movie(id int, title, releaseDate string) tmdb.Movie {
	return tmdb.Movie{
		ID:          id,
		Title:       title,
		Overview:    title + " overview.",
		ReleaseDate: releaseDate,
		Popularity:  float64(id) * 10,
		VoteAverage: 7.5,
		PosterPath:  fmt.Sprintf("/poster%d.jpg", id),
	}
}

func movies(n int) []tmdb.Movie {
	out := make([]tmdb.Movie, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, movie(i, fmt.Sprintf("Movie %d", i), fmt.Sprintf("20%02d-01-01", i)))
	}
	return out
}

func newTestService(catalog Catalog, gen *fakeLLM) *Service {
	return NewService(ServiceOptions{Catalog: catalog, LLM: gen})
}
