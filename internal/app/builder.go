package app

import (
	"context"
	"fmt"

	"cinemate/internal/llm"
	"cinemate/internal/llm/gemini"
	"cinemate/internal/llm/groq"
	"cinemate/internal/llm/vertex"
	"cinemate/internal/recommend"
	"cinemate/internal/tmdb"
	"cinemate/pkg/config"
	"cinemate/pkg/prompts"
)

func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	p, err := prompts.Load(cfg.Prompts.Path)
	if err != nil {
		return nil, err
	}

	catalog := tmdb.NewClient(tmdb.Config{
		APIKey:   cfg.TMDBAPIKey,
		BaseURL:  cfg.TMDB.BaseURL,
		Language: cfg.TMDB.Language,
		Timeout:  cfg.HTTP.Timeout,
	})

	llmClient, err := newLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recommender := recommend.NewService(recommend.ServiceOptions{
		Catalog: catalog,
		LLM:     llmClient,
		Prompts: p,
	})

	return NewService(ServiceOptions{
		Config:      cfg,
		Catalog:     catalog,
		Recommender: recommender,
	}), nil
}

func newLLM(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case llm.ProviderGemini:
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
			Timeout: cfg.HTTP.Timeout,
		}), nil
	case llm.ProviderVertex:
		client, err := vertex.NewClient(ctx, vertex.Config{
			Project:  cfg.GCPProject,
			Location: cfg.Vertex.Location,
			APIKey:   cfg.GeminiAPIKey,
			Model:    cfg.Vertex.Model,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case llm.ProviderGroq:
		client, err := groq.NewClient(groq.Config{
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.Groq.Model,
			BaseURL: cfg.Groq.BaseURL,
			Timeout: cfg.HTTP.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
