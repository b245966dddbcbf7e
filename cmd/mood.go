package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cinemate/internal/recommend"
)

var moodCmd = &cobra.Command{
	Use:     "mood <feeling>",
	Short:   "Suggest movies that fit how you feel",
	Example: `  cinemate mood nostalgic and a little sad`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		emotion := strings.Join(args, " ")

		svc, err := loadService(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		type outcome struct {
			suggestions []recommend.EmotionSuggestion
			err         error
		}
		res := withSpinner("Matching your mood...", func() outcome {
			s, err := svc.Recommender().EmotionSuggestions(cmd.Context(), emotion)
			return outcome{s, err}
		})
		if res.err != nil {
			return res.err
		}

		newPrinter(os.Stdout).emotionSuggestions(res.suggestions)
		return maybeSave(cmd, svc, "mood", emotion, res.suggestions)
	},
}

func init() {
	moodCmd.Flags().BoolVar(&saveResult, "save", false, "Save the results to the configured output location")
	rootCmd.AddCommand(moodCmd)
}
