package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"cinemate/internal/tmdb"
)

const (
	topCast    = 10
	topSimilar = 5
	posterSize = "large"
)

var openTrailer bool

var movieCmd = &cobra.Command{
	Use:     "movie <id>",
	Short:   "Show details, cast and trailer for a movie",
	Example: `  cinemate movie 27205 --trailer`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid movie id %q", args[0])
		}

		svc, err := loadService(cmd, false)
		if err != nil {
			return err
		}
		defer svc.Close()

		details, err := svc.Catalog().Details(cmd.Context(), id)
		if err != nil {
			return err
		}

		newPrinter(os.Stdout).details(details)

		if openTrailer {
			trailer, ok := details.Trailer()
			if !ok || trailer.URL() == "" {
				fmt.Println(warnStyle.Render("No trailer available"))
				return nil
			}
			return browser.OpenURL(trailer.URL())
		}
		return nil
	},
}

func init() {
	movieCmd.Flags().BoolVar(&openTrailer, "trailer", false, "Open the trailer in a browser")
	rootCmd.AddCommand(movieCmd)
}

func (p *printer) details(d *tmdb.MovieDetails) {
	title := d.Title
	if year := d.Year(); year != "" {
		title = fmt.Sprintf("%s (%s)", d.Title, year)
	}
	p.heading(title)
	if d.Tagline != "" {
		p.line(mutedStyle, d.Tagline)
	}

	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}

	facts := [][]string{
		{"Rating", fmt.Sprintf("%.1f/10 (%d votes)", d.VoteAverage, d.VoteCount)},
		{"Runtime", runtimeText(d.Runtime)},
		{"Genres", strings.Join(genres, ", ")},
		{"Directed by", strings.Join(d.Directors(), ", ")},
		{"Status", d.Status},
	}
	if poster := tmdb.ImageURL(d.PosterPath, tmdb.PosterSizes[posterSize]); poster != "" {
		facts = append(facts, []string{"Poster", poster})
	}
	if trailer, ok := d.Trailer(); ok && trailer.URL() != "" {
		facts = append(facts, []string{"Trailer", trailer.URL()})
	}
	p.table([]column{{header: "Field"}, {header: "Value", maxWidth: 80}}, facts)

	if d.Overview != "" {
		_, _ = fmt.Fprintln(p.w, d.Overview)
		_, _ = fmt.Fprintln(p.w)
	}

	if len(d.Credits.Cast) > 0 {
		cast := d.Credits.Cast[:min(topCast, len(d.Credits.Cast))]
		rows := make([][]string, 0, len(cast))
		for _, c := range cast {
			rows = append(rows, []string{c.Name, c.Character})
		}
		p.heading("Cast")
		p.table([]column{{header: "Actor"}, {header: "Character"}}, rows)
	}

	if len(d.Similar.Results) > 0 {
		p.heading("Similar movies")
		p.movies(&tmdb.MovieList{Results: d.Similar.Results[:min(topSimilar, len(d.Similar.Results))]})
	}
}

func runtimeText(minutes int) string {
	if minutes <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
