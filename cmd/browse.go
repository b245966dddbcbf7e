package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cinemate/internal/tmdb"
)

var (
	browsePage     int
	trendingWindow string
)

type listFunc func(ctx context.Context, catalog *tmdb.Client, args []string) (*tmdb.MovieList, error)

// listCommand wires a catalog-only command that prints one page of movies.
func listCommand(use, short string, args cobra.PositionalArgs, fetch listFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd, false)
			if err != nil {
				return err
			}
			defer svc.Close()

			res := withSpinner("Loading movies...", func() listResult {
				list, err := fetch(cmd.Context(), svc.Catalog(), args)
				return listResult{list, err}
			})
			if res.err != nil {
				return res.err
			}

			newPrinter(os.Stdout).movies(res.list)
			return nil
		},
	}
}

type listResult struct {
	list *tmdb.MovieList
	err  error
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse catalog lists",
}

var trendingCmd = listCommand("trending", "Show trending movies", cobra.NoArgs,
	func(ctx context.Context, catalog *tmdb.Client, _ []string) (*tmdb.MovieList, error) {
		if trendingWindow != "day" && trendingWindow != "week" {
			return nil, fmt.Errorf("window must be day or week, got %q", trendingWindow)
		}
		return catalog.Trending(ctx, trendingWindow, tmdb.ClampPage(browsePage))
	})

var popularCmd = listCommand("popular", "Show popular movies", cobra.NoArgs,
	func(ctx context.Context, catalog *tmdb.Client, _ []string) (*tmdb.MovieList, error) {
		return catalog.Popular(ctx, tmdb.ClampPage(browsePage))
	})

var topRatedCmd = listCommand("top-rated", "Show the highest rated movies", cobra.NoArgs,
	func(ctx context.Context, catalog *tmdb.Client, _ []string) (*tmdb.MovieList, error) {
		return catalog.TopRated(ctx, tmdb.ClampPage(browsePage))
	})

var upcomingCmd = listCommand("upcoming", "Show upcoming releases", cobra.NoArgs,
	func(ctx context.Context, catalog *tmdb.Client, _ []string) (*tmdb.MovieList, error) {
		return catalog.Upcoming(ctx, tmdb.ClampPage(browsePage))
	})

var genreCmd = listCommand("genre <name>", "Show popular movies in a genre", cobra.MinimumNArgs(1),
	func(ctx context.Context, catalog *tmdb.Client, args []string) (*tmdb.MovieList, error) {
		genre, err := lookupGenre(ctx, catalog, strings.Join(args, " "))
		if err != nil {
			return nil, err
		}
		return catalog.ByGenre(ctx, genre.ID, tmdb.ClampPage(browsePage))
	})

var searchCmd = listCommand("search <query>", "Search movies by title", cobra.MinimumNArgs(1),
	func(ctx context.Context, catalog *tmdb.Client, args []string) (*tmdb.MovieList, error) {
		return catalog.Search(ctx, strings.Join(args, " "), tmdb.ClampPage(browsePage))
	})

func init() {
	trendingCmd.Flags().StringVar(&trendingWindow, "window", "day", "Trending window: day or week")

	browseCmd.PersistentFlags().IntVarP(&browsePage, "page", "p", 1, "Result page (1-500)")
	browseCmd.AddCommand(trendingCmd, popularCmd, topRatedCmd, upcomingCmd, genreCmd)
	rootCmd.AddCommand(browseCmd)

	searchCmd.Flags().IntVarP(&browsePage, "page", "p", 1, "Result page (1-500)")
	rootCmd.AddCommand(searchCmd)
}

func lookupGenre(ctx context.Context, catalog *tmdb.Client, name string) (tmdb.Genre, error) {
	genres, err := catalog.Genres(ctx)
	if err != nil {
		return tmdb.Genre{}, err
	}
	genre, ok := tmdb.FindGenre(genres, name)
	if !ok {
		return tmdb.Genre{}, fmt.Errorf("unknown genre %q, see: cinemate genres", name)
	}
	return genre, nil
}
