package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List results saved with --save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd, false)
		if err != nil {
			return err
		}
		defer svc.Close()

		results, err := svc.SavedResults(cmd.Context())
		if err != nil {
			return err
		}

		p := newPrinter(os.Stdout)
		if len(results) == 0 {
			p.line(mutedStyle, fmt.Sprintf("No saved results in %s", svc.Config().Output.Location))
			return nil
		}
		for _, r := range results {
			_, _ = fmt.Fprintln(p.w, r)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(savedCmd)
}
