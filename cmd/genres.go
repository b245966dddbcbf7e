package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cinemate/internal/tmdb"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List catalog genres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd, false)
		if err != nil {
			return err
		}
		defer svc.Close()

		genres, err := svc.Catalog().Genres(cmd.Context())
		if err != nil {
			return err
		}

		newPrinter(os.Stdout).genres(genres)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

func (p *printer) genres(genres []tmdb.Genre) {
	rows := make([][]string, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, []string{strconv.Itoa(g.ID), g.Name})
	}
	p.table([]column{{header: "ID", align: alignRight}, {header: "Genre"}}, rows)
}
