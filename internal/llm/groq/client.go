package groq

import (
	"context"
	"fmt"
	"time"

	"github.com/conneroisu/groq-go"

	"cinemate/internal/llm"
	"cinemate/pkg/httputil"
)

const (
	service      = llm.ProviderGroq
	defaultModel = "llama-3.3-70b-versatile"
)

var _ llm.Client = (*Client)(nil)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	client *groq.Client
	model  groq.ChatModel
}

// NewClient creates a Groq chat client. An empty BaseURL keeps the library default.
// groq-go retries 500 and 503 responses without limit, so the HTTP client reports
// server errors before the library sees a status.
func NewClient(cfg Config) (*Client, error) {
	opts := []groq.Opts{
		groq.WithClient(httputil.NewSingleAttemptClient(service, cfg.Timeout)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, groq.WithBaseURL(cfg.BaseURL))
	}

	client, err := groq.NewClient(cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		client: client,
		model:  groq.ChatModel(model),
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		if upstream, ok := httputil.AsUpstream(err); ok {
			return "", upstream
		}
		return "", httputil.NewUpstreamError(service, fmt.Errorf("generate: %w", httputil.Redact(err)))
	}

	if len(resp.Choices) == 0 {
		return "", httputil.Malformed(service, "no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", httputil.Malformed(service, "empty response")
	}

	return content, nil
}
