package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinemate/pkg/httputil"
)

const (
	service         = "tmdb"
	baseURL         = "https://api.themoviedb.org/3"
	defaultLanguage = "en-US"
	defaultSort     = "popularity.desc"
	detailsAppend   = "credits,videos,similar,recommendations,keywords"
)

type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
}

type DiscoverOptions struct {
	GenreIDs []int
	Year     int
	SortBy   string
	Page     int
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = baseURL
	}
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}

	return &Client{
		apiKey:     cfg.APIKey,
		language:   language,
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: httputil.NewClient(cfg.Timeout),
	}
}

func (c *Client) Trending(ctx context.Context, window string, page int) (*MovieList, error) {
	if window == "" {
		window = "day"
	}
	return c.list(ctx, "/trending/movie/"+url.PathEscape(window), pageParams(page))
}

func (c *Client) Popular(ctx context.Context, page int) (*MovieList, error) {
	return c.list(ctx, "/movie/popular", pageParams(page))
}

func (c *Client) TopRated(ctx context.Context, page int) (*MovieList, error) {
	return c.list(ctx, "/movie/top_rated", pageParams(page))
}

func (c *Client) Upcoming(ctx context.Context, page int) (*MovieList, error) {
	return c.list(ctx, "/movie/upcoming", pageParams(page))
}

func (c *Client) ByGenre(ctx context.Context, genreID, page int) (*MovieList, error) {
	return c.Discover(ctx, DiscoverOptions{GenreIDs: []int{genreID}, Page: page})
}

func (c *Client) Discover(ctx context.Context, opts DiscoverOptions) (*MovieList, error) {
	params := pageParams(opts.Page)

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = defaultSort
	}
	params.Set("sort_by", sortBy)

	if len(opts.GenreIDs) > 0 {
		ids := make([]string, len(opts.GenreIDs))
		for i, id := range opts.GenreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}

	return c.list(ctx, "/discover/movie", params)
}

func (c *Client) Search(ctx context.Context, query string, page int) (*MovieList, error) {
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")
	return c.list(ctx, "/search/movie", params)
}

func (c *Client) Recommendations(ctx context.Context, movieID, page int) (*MovieList, error) {
	return c.list(ctx, fmt.Sprintf("/movie/%d/recommendations", movieID), pageParams(page))
}

// Details fetches a movie together with its credits, videos, similar and recommended
// titles and keywords in a single request.
func (c *Client) Details(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", detailsAppend)

	var details MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var resp struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", url.Values{}, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

func (c *Client) list(ctx context.Context, path string, params url.Values) (*MovieList, error) {
	var list MovieList
	if err := c.get(ctx, path, params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", httputil.Redact(err))
	}
	req.Header.Set("Accept", "application/json")

	body, err := httputil.Do(c.httpClient, req, service)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return httputil.Malformed(service, fmt.Sprintf("parse %s: %v", path, err))
	}
	return nil
}

func pageParams(page int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(ClampPage(page)))
	return params
}
