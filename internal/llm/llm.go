package llm

import "context"

// Client sends a single-turn prompt to a text generation model and returns its raw text.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
	ProviderGroq   = "groq"
)
