package vertex

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"cinemate/internal/llm"
	"cinemate/pkg/httputil"
)

const (
	service         = llm.ProviderVertex
	defaultModel    = "gemini-2.0-flash"
	defaultLocation = "us-central1"
)

var _ llm.Client = (*Client)(nil)

// Config selects the backend: with a Project the Vertex AI backend is used with
// application default credentials, otherwise the Gemini API backend with APIKey.
type Config struct {
	Project  string
	Location string
	APIKey   string
	Model    string
	BaseURL  string
}

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	clientCfg := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	}
	if cfg.Project != "" {
		location := cfg.Location
		if location == "" {
			location = defaultLocation
		}
		clientCfg.Backend = genai.BackendVertexAI
		clientCfg.Project = cfg.Project
		clientCfg.Location = location
	} else {
		clientCfg.Backend = genai.BackendGeminiAPI
		clientCfg.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", toUpstream(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", httputil.Malformed(service, "no response")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", httputil.Malformed(service, "empty response")
	}

	return text, nil
}

func toUpstream(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &httputil.UpstreamError{
			Service:    service,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &httputil.UpstreamError{
			Service:    service,
			StatusCode: apiErrPtr.Code,
			Message:    apiErrPtr.Message,
			Err:        err,
		}
	}
	return httputil.NewUpstreamError(service, fmt.Errorf("generate: %w", err))
}
