package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cinemate/internal/tmdb"
)

var (
	discoverGenre string
	discoverYear  int
	discoverSort  string
)

var sortOrders = []string{
	"popularity.desc",
	"popularity.asc",
	"vote_average.desc",
	"vote_average.asc",
	"primary_release_date.desc",
	"primary_release_date.asc",
	"revenue.desc",
}

var discoverCmd = listCommand("discover", "Discover movies by genre, year and sort order", cobra.NoArgs,
	func(ctx context.Context, catalog *tmdb.Client, _ []string) (*tmdb.MovieList, error) {
		if !validSort(discoverSort) {
			return nil, fmt.Errorf("unsupported sort %q, use one of %v", discoverSort, sortOrders)
		}

		opts := tmdb.DiscoverOptions{
			Year:   discoverYear,
			SortBy: discoverSort,
			Page:   tmdb.ClampPage(browsePage),
		}
		if discoverGenre != "" {
			genre, err := lookupGenre(ctx, catalog, discoverGenre)
			if err != nil {
				return nil, err
			}
			opts.GenreIDs = []int{genre.ID}
		}
		return catalog.Discover(ctx, opts)
	})

func init() {
	discoverCmd.Flags().StringVar(&discoverGenre, "genre", "", "Genre name")
	discoverCmd.Flags().IntVar(&discoverYear, "year", 0, "Primary release year")
	discoverCmd.Flags().StringVar(&discoverSort, "sort", "popularity.desc", "Sort order")
	discoverCmd.Flags().IntVarP(&browsePage, "page", "p", 1, "Result page (1-500)")
	rootCmd.AddCommand(discoverCmd)
}

func validSort(s string) bool {
	for _, o := range sortOrders {
		if o == s {
			return true
		}
	}
	return false
}
