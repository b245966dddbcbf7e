package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinemate/pkg/httputil"
)

func newTestClient(serverURL string) *Client {
	client := NewClient(Config{APIKey: "test-key"})
	client.baseURL = serverURL
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestListEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) (*MovieList, error)
		wantPath string
		wantPage string
	}{
		{
			name:     "trendingDefaultWindow",
			call:     func(c *Client) (*MovieList, error) { return c.Trending(context.Background(), "", 1) },
			wantPath: "/trending/movie/day",
			wantPage: "1",
		},
		{
			name:     "trendingWeek",
			call:     func(c *Client) (*MovieList, error) { return c.Trending(context.Background(), "week", 2) },
			wantPath: "/trending/movie/week",
			wantPage: "2",
		},
		{
			name:     "popular",
			call:     func(c *Client) (*MovieList, error) { return c.Popular(context.Background(), 0) },
			wantPath: "/movie/popular",
			wantPage: "1",
		},
		{
			name:     "topRated",
			call:     func(c *Client) (*MovieList, error) { return c.TopRated(context.Background(), 3) },
			wantPath: "/movie/top_rated",
			wantPage: "3",
		},
		{
			name:     "upcomingClampsPage",
			call:     func(c *Client) (*MovieList, error) { return c.Upcoming(context.Background(), 9999) },
			wantPath: "/movie/upcoming",
			wantPage: "500",
		},
		{
			name:     "recommendations",
			call:     func(c *Client) (*MovieList, error) { return c.Recommendations(context.Background(), 27205, 1) },
			wantPath: "/movie/27205/recommendations",
			wantPage: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				if r.URL.Path != tt.wantPath {
					t.Errorf("path = %q, want %q", r.URL.Path, tt.wantPath)
				}
				q := r.URL.Query()
				if q.Get("api_key") != "test-key" {
					t.Errorf("api_key = %q, want test-key", q.Get("api_key"))
				}
				if q.Get("language") != "en-US" {
					t.Errorf("language = %q, want en-US", q.Get("language"))
				}
				if q.Get("page") != tt.wantPage {
					t.Errorf("page = %q, want %q", q.Get("page"), tt.wantPage)
				}
				writeJSON(t, w, MovieList{
					Page:    1,
					Results: []Movie{{ID: 1, Title: "Movie 1"}, {ID: 2, Title: "Movie 2"}},
				})
			}))
			defer server.Close()

			list, err := tt.call(newTestClient(server.URL))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(list.Results) != 2 {
				t.Errorf("got %d results, want 2", len(list.Results))
			}
		})
	}
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "the matrix" {
			t.Errorf("query = %q, want %q", q.Get("query"), "the matrix")
		}
		if q.Get("include_adult") != "false" {
			t.Errorf("include_adult = %q, want false", q.Get("include_adult"))
		}
		writeJSON(t, w, MovieList{Results: []Movie{{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"}}})
	}))
	defer server.Close()

	list, err := newTestClient(server.URL).Search(context.Background(), "the matrix", 1)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(list.Results) != 1 || list.Results[0].Year() != "1999" {
		t.Errorf("Search() = %+v", list.Results)
	}
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name       string
		opts       DiscoverOptions
		wantGenres string
		wantYear   string
		wantSort   string
	}{
		{
			name:       "byGenreDefaults",
			opts:       DiscoverOptions{GenreIDs: []int{35}},
			wantGenres: "35",
			wantSort:   "popularity.desc",
		},
		{
			name:       "multipleGenresAndYear",
			opts:       DiscoverOptions{GenreIDs: []int{28, 12}, Year: 1999, SortBy: "vote_average.desc"},
			wantGenres: "28,12",
			wantYear:   "1999",
			wantSort:   "vote_average.desc",
		},
		{
			name:     "noFilters",
			opts:     DiscoverOptions{},
			wantSort: "popularity.desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/discover/movie" {
					t.Errorf("path = %q", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("with_genres") != tt.wantGenres {
					t.Errorf("with_genres = %q, want %q", q.Get("with_genres"), tt.wantGenres)
				}
				if q.Get("primary_release_year") != tt.wantYear {
					t.Errorf("primary_release_year = %q, want %q", q.Get("primary_release_year"), tt.wantYear)
				}
				if q.Get("sort_by") != tt.wantSort {
					t.Errorf("sort_by = %q, want %q", q.Get("sort_by"), tt.wantSort)
				}
				writeJSON(t, w, MovieList{})
			}))
			defer server.Close()

			if _, err := newTestClient(server.URL).Discover(context.Background(), tt.opts); err != nil {
				t.Fatalf("Discover() error: %v", err)
			}
		})
	}
}

func TestDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/27205" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("append_to_response"); got != "credits,videos,similar,recommendations,keywords" {
			t.Errorf("append_to_response = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"id": 27205,
			"title": "Inception",
			"release_date": "2010-07-15",
			"runtime": 148,
			"genres": [{"id": 28, "name": "Action"}],
			"credits": {
				"cast": [{"id": 6193, "name": "Leonardo DiCaprio", "character": "Cobb"}],
				"crew": [{"id": 525, "name": "Christopher Nolan", "job": "Director"}, {"id": 1, "name": "Hans Zimmer", "job": "Original Music Composer"}]
			},
			"videos": {"results": [
				{"key": "abc", "site": "Vimeo", "type": "Trailer"},
				{"key": "teaser1", "site": "YouTube", "type": "Teaser"},
				{"key": "YoHD9XEInc0", "site": "YouTube", "type": "Trailer"}
			]},
			"similar": {"results": [{"id": 1, "title": "Similar"}]},
			"recommendations": {"results": [{"id": 2, "title": "Recommended"}]},
			"keywords": {"keywords": [{"id": 1, "name": "dream"}]}
		}`))
	}))
	defer server.Close()

	details, err := newTestClient(server.URL).Details(context.Background(), 27205)
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}

	if details.Title != "Inception" || details.Runtime != 148 {
		t.Errorf("Details() = %q runtime %d", details.Title, details.Runtime)
	}
	if directors := details.Directors(); len(directors) != 1 || directors[0] != "Christopher Nolan" {
		t.Errorf("Directors() = %v", directors)
	}
	trailer, ok := details.Trailer()
	if !ok || trailer.Key != "YoHD9XEInc0" {
		t.Errorf("Trailer() = %+v, %v", trailer, ok)
	}
	if trailer.URL() != "https://www.youtube.com/watch?v=YoHD9XEInc0" {
		t.Errorf("URL() = %q", trailer.URL())
	}
	if len(details.Similar.Results) != 1 || len(details.Recommendations.Results) != 1 {
		t.Error("expected similar and recommendations sub-resources")
	}
	if len(details.Keywords.Keywords) != 1 {
		t.Error("expected keywords sub-resource")
	}
}

func TestGenres(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/movie/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`))
	}))
	defer server.Close()

	genres, err := newTestClient(server.URL).Genres(context.Background())
	if err != nil {
		t.Fatalf("Genres() error: %v", err)
	}
	if len(genres) != 2 || genres[1].Name != "Comedy" {
		t.Errorf("Genres() = %+v", genres)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"status_code":7,"status_message":"Invalid API key"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "serverError",
			status:     http.StatusInternalServerError,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "malformedBody",
			status: http.StatusOK,
			body:   `not json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Popular(context.Background(), 1)
			upstream, ok := httputil.AsUpstream(err)
			if !ok {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upstream.Service != "tmdb" {
				t.Errorf("Service = %q, want tmdb", upstream.Service)
			}
			if upstream.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		size string
		want string
	}{
		{name: "poster", path: "/abc.jpg", size: PosterSizes["large"], want: "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{name: "defaultSize", path: "/abc.jpg", want: "https://image.tmdb.org/t/p/original/abc.jpg"},
		{name: "emptyPath", path: "", size: "w185", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageURL(tt.path, tt.size); got != tt.want {
				t.Errorf("ImageURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMovieYear(t *testing.T) {
	if got := (Movie{ReleaseDate: "2009-05-28"}).Year(); got != "2009" {
		t.Errorf("Year() = %q, want 2009", got)
	}
	if got := (Movie{}).Year(); got != "" {
		t.Errorf("Year() = %q, want empty", got)
	}
}

func TestNetworkErrorHidesAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client := NewClient(Config{APIKey: "SECRET-TMDB-KEY", BaseURL: base})
	_, err := client.Trending(context.Background(), "day", 1)

	if !httputil.IsUpstream(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if strings.Contains(err.Error(), "SECRET-TMDB-KEY") {
		t.Errorf("error leaks the api key: %v", err)
	}
}
