package cmd

import (
	"bytes"
	"strings"
	"testing"

	"cinemate/internal/recommend"
	"cinemate/internal/tmdb"
)

func TestPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)

	if p.colorize {
		t.Fatal("a buffer should never be treated as a terminal")
	}

	p.movies(&tmdb.MovieList{
		Page:       1,
		TotalPages: 3,
		Results: []tmdb.Movie{
			{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4, VoteCount: 100},
		},
	})

	out := buf.String()
	for _, want := range []string{"id\ttitle\tyear\trating\tvotes", "27205\tinception\t2010\t8.4\t100", "page 1 of 3"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "╭") {
		t.Errorf("plain output should not contain box drawing:\n%s", out)
	}
}

func TestPrinterEmptyResults(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *printer)
		want  string
	}{
		{name: "recommendations", print: func(p *printer) { p.recommendations(nil) }, want: "No recommendations found."},
		{name: "emotion", print: func(p *printer) { p.emotionSuggestions(nil) }, want: "No suggestions found."},
		{name: "scenes", print: func(p *printer) { p.sceneMatches(nil) }, want: "No matching scenes found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(newPrinter(&buf))
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeParams(t *testing.T) {
	tests := []struct {
		name   string
		params recommend.Params
		want   string
	}{
		{name: "prompt", params: recommend.Params{Prompt: "heist movies", Genre: "Crime"}, want: "heist movies"},
		{name: "filters", params: recommend.Params{Genre: "Crime", Era: "1990s", Actors: []string{"Al Pacino"}}, want: "Crime 1990s Al Pacino"},
		{name: "empty", params: recommend.Params{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeParams(tt.params); got != tt.want {
				t.Errorf("describeParams() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuntimeText(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 148, want: "2h 28m"},
		{minutes: 45, want: "0h 45m"},
		{minutes: 0, want: "Unknown"},
	}

	for _, tt := range tests {
		if got := runtimeText(tt.minutes); got != tt.want {
			t.Errorf("runtimeText(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestValidSort(t *testing.T) {
	if !validSort("vote_average.desc") {
		t.Error("vote_average.desc should be accepted")
	}
	if validSort("rating") {
		t.Error("rating should be rejected")
	}
}
