package tmdb

import "fmt"

const (
	imageBaseURL = "https://image.tmdb.org/t/p"
	youtubeSite  = "YouTube"

	// MaxPages is the deepest page TMDB serves for any list endpoint.
	MaxPages = 500
)

var PosterSizes = map[string]string{
	"small":    "w185",
	"medium":   "w342",
	"large":    "w500",
	"original": "original",
}

var BackdropSizes = map[string]string{
	"small":    "w300",
	"medium":   "w780",
	"large":    "w1280",
	"original": "original",
}

type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	GenreIDs     []int   `json:"genre_ids"`
}

// Year returns the release year, or "" when the release date is unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

func (v Video) URL() string {
	if v.Site != youtubeSite || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type VideoList struct {
	Results []Video `json:"results"`
}

type KeywordList struct {
	Keywords []Keyword `json:"keywords"`
}

type MovieDetails struct {
	Movie
	Runtime         int         `json:"runtime"`
	Tagline         string      `json:"tagline"`
	Status          string      `json:"status"`
	Genres          []Genre     `json:"genres"`
	Credits         Credits     `json:"credits"`
	Videos          VideoList   `json:"videos"`
	Similar         MovieList   `json:"similar"`
	Recommendations MovieList   `json:"recommendations"`
	Keywords        KeywordList `json:"keywords"`
}

func (d *MovieDetails) Directors() []string {
	var names []string
	for _, member := range d.Credits.Crew {
		if member.Job == "Director" {
			names = append(names, member.Name)
		}
	}
	return names
}

// Trailer picks the first YouTube trailer, falling back to any YouTube video.
func (d *MovieDetails) Trailer() (Video, bool) {
	var fallback *Video
	for i, video := range d.Videos.Results {
		if video.Site != youtubeSite {
			continue
		}
		if video.Type == "Trailer" {
			return video, true
		}
		if fallback == nil {
			fallback = &d.Videos.Results[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Video{}, false
}

// ImageURL builds a full image URL from a TMDB path and a size such as "w500".
// An empty path yields "".
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return fmt.Sprintf("%s/%s%s", imageBaseURL, size, path)
}

func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPages {
		return MaxPages
	}
	return page
}
