package tmdb

import "testing"

func TestFindGenre(t *testing.T) {
	genres := []Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}

	tests := []struct {
		name   string
		input  string
		wantID int
		wantOK bool
	}{
		{name: "exact", input: "Action", wantID: 28, wantOK: true},
		{name: "caseInsensitive", input: "science FICTION", wantID: 878, wantOK: true},
		{name: "surroundingSpace", input: "  action ", wantID: 28, wantOK: true},
		{name: "unknown", input: "Western", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindGenre(genres, tt.input)
			if ok != tt.wantOK || got.ID != tt.wantID {
				t.Errorf("FindGenre(%q) = %+v, %v, want id %d, %v", tt.input, got, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
