package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cinemate/internal/recommend"
)

var sceneCmd = &cobra.Command{
	Use:     "scene <description>",
	Short:   "Identify movies from a remembered scene",
	Example: `  cinemate scene a spinning top wobbles on a table at the end`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.Join(args, " ")

		svc, err := loadService(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		matches := withSpinner("Searching for the scene...", func() []recommend.SceneMatch {
			return svc.Recommender().FindByScene(cmd.Context(), description)
		})

		newPrinter(os.Stdout).sceneMatches(matches)
		return maybeSave(cmd, svc, "scene", description, matches)
	},
}

func init() {
	sceneCmd.Flags().BoolVar(&saveResult, "save", false, "Save the results to the configured output location")
	rootCmd.AddCommand(sceneCmd)
}
