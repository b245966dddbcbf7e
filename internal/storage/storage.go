// Package storage saves CLI results to a local directory or a GCS bucket.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	gcsScheme    = "gs://"
	resultExt    = ".json"
	maxSlugLen   = 50
	timestampFmt = "20060102_150405"
)

// Sink stores named result files. It is write-mostly: nothing in the
// recommendation pipeline reads results back.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Open picks GCS for gs://bucket/prefix locations and a local directory otherwise.
func Open(ctx context.Context, location string) (Sink, error) {
	if bucket, prefix, ok := parseGCSLocation(location); ok {
		return NewGCSStorage(ctx, bucket, prefix)
	}
	return NewLocalStorage(location), nil
}

func parseGCSLocation(location string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(location, gcsScheme)
	if !found || rest == "" {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	return bucket, strings.Trim(prefix, "/"), bucket != ""
}

// ResultName builds names like 20250101_120000_recommend_feel_good_movies.json.
func ResultName(kind, query string, now time.Time) string {
	slug := sanitizeForPath(query)
	if slug == "" {
		slug = "untitled"
	}
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "_")
	}
	return fmt.Sprintf("%s_%s_%s%s", now.Format(timestampFmt), sanitizeForPath(kind), slug, resultExt)
}

func sanitizeForPath(s string) string {
	s = strings.ToLower(s)
	s = sanitizeRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
