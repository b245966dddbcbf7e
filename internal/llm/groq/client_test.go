package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"cinemate/pkg/httputil"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type groqResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

func makeGroqResponse(content string) groqResponse {
	return groqResponse{
		ID:      "test-id",
		Object:  "chat.completion",
		Created: 1234567890,
		Model:   "llama-3.3-70b-versatile",
		Choices: []chatChoice{
			{
				Message:      chatMessage{Role: "assistant", Content: content},
				FinishReason: "stop",
			},
		},
	}
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{APIKey: "test-api-key", BaseURL: serverURL + "/"})
	if err != nil {
		t.Fatalf("failed to create groq client: %v", err)
	}
	return client
}

func TestGenerate(t *testing.T) {
	emptyChoices := makeGroqResponse("")
	emptyChoices.Choices = nil

	tests := []struct {
		name         string
		responseBody string
		statusCode   int
		wantErr      bool
		wantContent  string
	}{
		{
			name:         "successfulGeneration",
			responseBody: mustJSON(makeGroqResponse("You might enjoy Paddington 2.")),
			statusCode:   http.StatusOK,
			wantContent:  "You might enjoy Paddington 2.",
		},
		{
			name:         "emptyResponse",
			responseBody: mustJSON(makeGroqResponse("")),
			statusCode:   http.StatusOK,
			wantErr:      true,
		},
		{
			name:         "noChoices",
			responseBody: mustJSON(emptyChoices),
			statusCode:   http.StatusOK,
			wantErr:      true,
		},
		{
			name:         "serverError",
			responseBody: `{"error":{"message":"internal error","type":"server_error"}}`,
			statusCode:   http.StatusInternalServerError,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Messages []chatMessage `json:"messages"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if len(body.Messages) != 1 || body.Messages[0].Role != "user" || body.Messages[0].Content != "what should I watch?" {
					t.Errorf("unexpected messages: %+v", body.Messages)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			got, err := client.Generate(context.Background(), "what should I watch?")

			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !httputil.IsUpstream(err) {
					t.Errorf("expected UpstreamError, got %T", err)
				}
				return
			}
			if got != tt.wantContent {
				t.Errorf("Generate() = %q, want %q", got, tt.wantContent)
			}
		})
	}
}

func TestGenerateServerErrorIsSingleAttempt(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "internalError", status: http.StatusInternalServerError},
		{name: "serviceUnavailable", status: http.StatusServiceUnavailable},
		{name: "badGateway", status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Succeeds from the second request on, so any retry would mask the failure.
				if atomic.AddInt32(&hits, 1) > 1 {
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(mustJSON(makeGroqResponse("retried"))))
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			got, err := client.Generate(context.Background(), "what should I watch?")

			if err == nil {
				t.Fatalf("Generate() = %q, want error", got)
			}
			upstream, ok := httputil.AsUpstream(err)
			if !ok {
				t.Fatalf("expected UpstreamError, got %T", err)
			}
			if upstream.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, tt.status)
			}
			if !strings.Contains(err.Error(), "model overloaded") {
				t.Errorf("error = %q, want upstream message", err)
			}
			if n := atomic.LoadInt32(&hits); n != 1 {
				t.Errorf("server saw %d requests, want 1", n)
			}
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("NewClient() with no key should fail")
	}
}
