// Package recommend turns free-text requests into movie picks by combining the
// generative model with the TMDB catalog. Every operation walks a fixed fallback
// chain and degrades to catalog data, or finally to an empty result, instead of failing.
package recommend

import (
	"context"
	"fmt"

	"cinemate/internal/llm"
	"cinemate/pkg/prompts"
)

type Service struct {
	catalog Catalog
	llm     llm.Client
	prompts *prompts.Prompts
}

type ServiceOptions struct {
	Catalog Catalog
	LLM     llm.Client
	Prompts *prompts.Prompts
}

func NewService(opts ServiceOptions) *Service {
	p := opts.Prompts
	if p == nil {
		p = prompts.Default()
	}
	return &Service{
		catalog: opts.Catalog,
		llm:     opts.LLM,
		prompts: p,
	}
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	text, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}
