package recommend

import (
	"context"
	"strings"

	"cinemate/internal/extract"
	"cinemate/internal/tmdb"
)

const (
	maxResults      = 5
	maxGeneralPicks = 3
	unknown         = "Unknown"
)

type Recommendation struct {
	Title       string        `json:"title"`
	Year        extract.Year  `json:"year"`
	Director    extract.Names `json:"director,omitempty"`
	Description string        `json:"description,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	PosterPath  string        `json:"posterPath,omitempty"`
	CatalogID   int           `json:"catalogId,omitempty"`
}

type EmotionSuggestion struct {
	Title         string       `json:"title"`
	Year          extract.Year `json:"year"`
	Description   string       `json:"description,omitempty"`
	EmotionReason string       `json:"emotionReason,omitempty"`
	PosterPath    string       `json:"posterPath,omitempty"`
	CatalogID     int          `json:"catalogId,omitempty"`
}

type SceneMatch struct {
	Title            string       `json:"title"`
	Year             extract.Year `json:"year"`
	SceneDescription string       `json:"sceneDescription,omitempty"`
	MovieContext     string       `json:"movieContext,omitempty"`
	PosterPath       string       `json:"posterPath,omitempty"`
	CatalogID        int          `json:"catalogId,omitempty"`
}

// Params is a recommendation request. A non-empty Prompt is sent to the model
// verbatim; the remaining fields are filters.
type Params struct {
	Prompt        string   `json:"prompt,omitempty"`
	Genre         string   `json:"genre,omitempty"`
	Mood          string   `json:"mood,omitempty"`
	Era           string   `json:"era,omitempty"`
	Actors        []string `json:"actors,omitempty"`
	Directors     []string `json:"directors,omitempty"`
	SimilarMovies []string `json:"similarMovies,omitempty"`
}

// Catalog is the part of the TMDB client the orchestrator depends on.
type Catalog interface {
	Trending(ctx context.Context, window string, page int) (*tmdb.MovieList, error)
	Popular(ctx context.Context, page int) (*tmdb.MovieList, error)
	Search(ctx context.Context, query string, page int) (*tmdb.MovieList, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	ByGenre(ctx context.Context, genreID, page int) (*tmdb.MovieList, error)
	Recommendations(ctx context.Context, movieID, page int) (*tmdb.MovieList, error)
}

func yearOf(m tmdb.Movie) extract.Year {
	if y := m.Year(); y != "" {
		return extract.Year(y)
	}
	return unknown
}

func firstN(movies []tmdb.Movie, n int) []tmdb.Movie {
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}

func (r Recommendation) title() string    { return r.Title }
func (e EmotionSuggestion) title() string { return e.Title }
func (m SceneMatch) title() string        { return m.Title }

// records decodes model output and drops entries without a title.
func records[T interface{ title() string }](text string, keys ...string) []T {
	decoded := extract.Records[T](text, keys...)
	kept := decoded[:0]
	for _, item := range decoded {
		if strings.TrimSpace(item.title()) != "" {
			kept = append(kept, item)
		}
	}
	return kept
}
