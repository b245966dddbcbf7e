package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinemate/internal/llm"
	"cinemate/pkg/httputil"
)

const (
	service      = llm.ProviderGemini
	baseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel = "gemini-2.0-flash"
)

var _ llm.Client = (*Client)(nil)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type request struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content      *content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type response struct {
	Candidates []candidate `json:"candidates"`
}

func NewClient(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	base := cfg.BaseURL
	if base == "" {
		base = baseURL
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: httputil.NewClient(cfg.Timeout),
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	data, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", httputil.Redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := httputil.Do(c.httpClient, req, service)
	if err != nil {
		return "", err
	}

	return parseResponse(body)
}

func parseResponse(body []byte) (string, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", httputil.Malformed(service, fmt.Sprintf("parse response: %v", err))
	}

	if len(resp.Candidates) == 0 {
		return "", httputil.Malformed(service, "no candidates")
	}

	first := resp.Candidates[0].Content
	if first == nil || len(first.Parts) == 0 {
		return "", httputil.Malformed(service, "no content parts")
	}

	if first.Parts[0].Text == "" {
		return "", httputil.Malformed(service, "empty text")
	}

	return first.Parts[0].Text, nil
}
