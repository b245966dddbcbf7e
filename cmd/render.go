package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"cinemate/internal/recommend"
	"cinemate/internal/tmdb"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	replyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

type column struct {
	header   string
	align    columnAlignment
	maxWidth int
}

// printer renders tables and headings for a terminal, or plain tab separated text
// when output is redirected.
type printer struct {
	w        io.Writer
	colorize bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, colorize: shouldColorize(w)}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *printer) heading(s string) {
	if p.colorize {
		s = headingStyle.Render(s)
	}
	_, _ = fmt.Fprintln(p.w, s)
}

func (p *printer) line(style lipgloss.Style, s string) {
	if p.colorize {
		s = style.Render(s)
	}
	_, _ = fmt.Fprintln(p.w, s)
}

func (p *printer) table(columns []column, rows [][]string) {
	if len(columns) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		header[i] = c.header
		align := text.AlignLeft
		if c.align == alignRight {
			align = text.AlignRight
		}
		cfg := table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
		if p.colorize && c.maxWidth > 0 {
			cfg.WidthMax = c.maxWidth
		}
		configs = append(configs, cfg)
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	if p.colorize {
		_, _ = fmt.Fprintln(p.w, tw.Render())
		return
	}
	_, _ = fmt.Fprintln(p.w, tw.RenderTSV())
}

var movieColumns = []column{
	{header: "ID", align: alignRight},
	{header: "Title", maxWidth: 40},
	{header: "Year"},
	{header: "Rating", align: alignRight},
	{header: "Votes", align: alignRight},
}

func (p *printer) movies(list *tmdb.MovieList) {
	rows := make([][]string, 0, len(list.Results))
	for _, m := range list.Results {
		rows = append(rows, []string{
			strconv.Itoa(m.ID),
			m.Title,
			m.Year(),
			fmt.Sprintf("%.1f", m.VoteAverage),
			strconv.Itoa(m.VoteCount),
		})
	}
	p.table(movieColumns, rows)
	if list.TotalPages > 1 {
		p.line(mutedStyle, fmt.Sprintf("Page %d of %d", list.Page, min(list.TotalPages, tmdb.MaxPages)))
	}
}

func (p *printer) recommendations(recs []recommend.Recommendation) {
	if len(recs) == 0 {
		p.line(mutedStyle, "No recommendations found.")
		return
	}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{r.Title, r.Year.String(), r.Director.String(), r.Reason})
	}
	p.table([]column{
		{header: "Title", maxWidth: 32},
		{header: "Year"},
		{header: "Director", maxWidth: 24},
		{header: "Why", maxWidth: 60},
	}, rows)
}

func (p *printer) emotionSuggestions(items []recommend.EmotionSuggestion) {
	if len(items) == 0 {
		p.line(mutedStyle, "No suggestions found.")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{s.Title, s.Year.String(), s.EmotionReason})
	}
	p.table([]column{
		{header: "Title", maxWidth: 32},
		{header: "Year"},
		{header: "Why it fits", maxWidth: 70},
	}, rows)
}

func (p *printer) sceneMatches(matches []recommend.SceneMatch) {
	if len(matches) == 0 {
		p.line(mutedStyle, "No matching scenes found.")
		return
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{m.Title, m.Year.String(), m.SceneDescription, m.MovieContext})
	}
	p.table([]column{
		{header: "Title", maxWidth: 28},
		{header: "Year"},
		{header: "Scene", maxWidth: 45},
		{header: "Context", maxWidth: 45},
	}, rows)
}

// withSpinner shows a spinner while fn runs, but only on a terminal.
func withSpinner[T any](title string, fn func() T) T {
	var result T
	if !shouldColorize(os.Stdout) {
		return fn()
	}
	_ = spinner.New().
		Title(title).
		Action(func() { result = fn() }).
		Run()
	return result
}
