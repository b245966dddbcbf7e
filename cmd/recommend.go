package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cinemate/internal/app"
	"cinemate/internal/recommend"
)

var (
	recGenre     string
	recMood      string
	recEra       string
	recActors    []string
	recDirectors []string
	recSimilar   []string
	saveResult   bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [prompt]",
	Short: "Recommend movies for a prompt or a set of filters",
	Example: `  cinemate recommend "feel-good movies about friendship"
  cinemate recommend --genre comedy --mood uplifting --era 1990s
  cinemate recommend --similar Heat --director "Michael Mann"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := recommend.Params{
			Prompt:        strings.Join(args, " "),
			Genre:         recGenre,
			Mood:          recMood,
			Era:           recEra,
			Actors:        recActors,
			Directors:     recDirectors,
			SimilarMovies: recSimilar,
		}

		svc, err := loadService(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		recs := withSpinner("Finding recommendations...", func() []recommend.Recommendation {
			return svc.Recommender().Recommendations(cmd.Context(), params)
		})

		p := newPrinter(os.Stdout)
		p.recommendations(recs)

		return maybeSave(cmd, svc, "recommend", describeParams(params), recs)
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recGenre, "genre", "", "Genre name, e.g. comedy")
	recommendCmd.Flags().StringVar(&recMood, "mood", "", "Mood, e.g. uplifting")
	recommendCmd.Flags().StringVar(&recEra, "era", "", "Era, e.g. 1980s")
	recommendCmd.Flags().StringArrayVar(&recActors, "actor", nil, "Actor to include (repeatable)")
	recommendCmd.Flags().StringArrayVar(&recDirectors, "director", nil, "Director to include (repeatable)")
	recommendCmd.Flags().StringArrayVar(&recSimilar, "similar", nil, "Movie the picks should resemble (repeatable)")
	recommendCmd.Flags().BoolVar(&saveResult, "save", false, "Save the results to the configured output location")
	rootCmd.AddCommand(recommendCmd)
}

func describeParams(p recommend.Params) string {
	if p.Prompt != "" {
		return p.Prompt
	}
	parts := []string{p.Genre, p.Mood, p.Era}
	parts = append(parts, p.Actors...)
	parts = append(parts, p.Directors...)
	parts = append(parts, p.SimilarMovies...)

	var kept []string
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " ")
}

// maybeSave persists v when the command was run with --save.
func maybeSave(cmd *cobra.Command, svc *app.Service, kind, query string, v any) error {
	if !saveResult {
		return nil
	}

	location, err := svc.SaveResult(cmd.Context(), kind, query, v)
	if err != nil {
		return fmt.Errorf("save %s result: %w", kind, err)
	}
	slog.Info("Result saved", "location", location)
	return nil
}
