package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"cinemate/internal/tmdb"
	"cinemate/pkg/prompts"
)

const (
	minTitleLen  = 4
	chatApology  = "Sorry, I couldn't come up with an answer right now. Please try again in a moment."
	maxChatLinks = maxResults
)

// capitalizedRun matches runs of capitalized words. It misfires on any capitalized
// phrase that is not a title; callers treat hits as guesses.
var capitalizedRun = regexp.MustCompile(`[A-Z][A-Za-z0-9']*(?: [A-Z][A-Za-z0-9']*)*`)

// Chat answers a free-form movie question. Titles guessed from the message are
// looked up in the catalog and passed to the model as context. The reply is never empty.
func (s *Service) Chat(ctx context.Context, message string) string {
	const operation = "chat"

	tiers := []tier[string]{
		{name: "generative", run: func(ctx context.Context) ([]string, error) {
			prompt, err := s.prompts.RenderChat(prompts.ChatParams{
				Message: message,
				Context: s.chatContext(ctx, message),
			})
			if err != nil {
				return nil, fmt.Errorf("render chat prompt: %w", err)
			}
			reply, err := s.generate(ctx, prompt)
			if err != nil {
				return nil, err
			}
			if reply = strings.TrimSpace(reply); reply == "" {
				return nil, nil
			}
			return []string{reply}, nil
		}},
		{name: "trending", run: func(ctx context.Context) ([]string, error) {
			titles, err := s.trendingTitles(ctx)
			if err != nil {
				return nil, err
			}
			if len(titles) == 0 {
				return nil, nil
			}
			return []string{fmt.Sprintf(
				"I'm having trouble answering that right now, but here's what's trending today: %s. Ask me about any of them!",
				strings.Join(titles, ", "),
			)}, nil
		}},
	}

	replies, source, err := firstNonEmpty(ctx, operation, tiers)
	if len(replies) == 0 {
		slog.Error("Chat fell back to apology", "operation", operation, "error", err)
		return chatApology
	}

	slog.Debug("Chat reply ready", "source", source)
	return replies[0]
}

// Assist is a chat reply followed by recommendations for the same message.
func (s *Service) Assist(ctx context.Context, message string) (string, []Recommendation) {
	reply := s.Chat(ctx, message)
	return reply, s.Recommendations(ctx, Params{Prompt: message})
}

// titleCandidates returns capitalized runs of at least four characters, deduplicated
// in order of first appearance.
func titleCandidates(message string) []string {
	seen := make(map[string]bool)
	var candidates []string
	for _, match := range capitalizedRun.FindAllString(message, -1) {
		match = strings.TrimSpace(match)
		if len(match) < minTitleLen || seen[match] {
			continue
		}
		seen[match] = true
		candidates = append(candidates, match)
	}
	return candidates
}

// chatContext looks up every candidate title and today's trending list concurrently.
// Lookup failures only shrink the context.
func (s *Service) chatContext(ctx context.Context, message string) string {
	candidates := titleCandidates(message)
	hits := make([]*tmdb.Movie, len(candidates))
	var trending []string

	var group errgroup.Group
	for i, title := range candidates {
		group.Go(func() error {
			list, err := s.catalog.Search(ctx, title, 1)
			if err != nil {
				slog.Debug("Chat lookup failed", "title", title, "error", err)
				return nil
			}
			if len(list.Results) > 0 {
				hits[i] = &list.Results[0]
			}
			return nil
		})
	}
	group.Go(func() error {
		titles, err := s.trendingTitles(ctx)
		if err != nil {
			slog.Debug("Chat trending lookup failed", "error", err)
			return nil
		}
		trending = titles
		return nil
	})
	_ = group.Wait()

	var b strings.Builder
	for _, m := range hits {
		if m == nil {
			continue
		}
		fmt.Fprintf(&b, "%s (%s): %s Popularity: %.1f. Average rating: %.1f/10.\n",
			m.Title, yearOf(*m), m.Overview, m.Popularity, m.VoteAverage)
	}
	if len(trending) > 0 {
		fmt.Fprintf(&b, "Currently trending movies: %s.\n", strings.Join(trending, ", "))
	}
	return strings.TrimSpace(b.String())
}

func (s *Service) trendingTitles(ctx context.Context) ([]string, error) {
	list, err := s.catalog.Trending(ctx, trendingWindow, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}

	movies := firstN(list.Results, maxChatLinks)
	titles := make([]string, 0, len(movies))
	for _, m := range movies {
		titles = append(titles, m.Title)
	}
	return titles, nil
}
