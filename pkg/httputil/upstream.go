package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageLength = 200

var ErrMalformedResponse = errors.New("malformed response")

// UpstreamError is returned for any failed call to an external API. StatusCode is zero
// when no response was received.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Service, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}

func Malformed(service, detail string) *UpstreamError {
	return &UpstreamError{
		Service: service,
		Message: detail,
		Err:     fmt.Errorf("%w: %s", ErrMalformedResponse, detail),
	}
}

func AsUpstream(err error) (*UpstreamError, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream, true
	}
	return nil, false
}

func IsUpstream(err error) bool {
	_, ok := AsUpstream(err)
	return ok
}

func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Do sends req exactly once and returns the response body for 2xx statuses.
func Do(client *http.Client, req *http.Request, service string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, NewUpstreamError(service, fmt.Errorf("send request: %w", Redact(err)))
	}
	defer func() { _ = resp.Body.Close() }()

	return readBody(resp, service)
}

// readBody consumes resp and returns its body for 2xx statuses.
func readBody(resp *http.Response, service string) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	return body, nil
}

type errorBody struct {
	StatusMessage string `json:"status_message"`
	Error         *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func errorMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.StatusMessage != "" {
			return parsed.StatusMessage
		}
		if parsed.Error != nil && parsed.Error.Message != "" {
			return parsed.Error.Message
		}
	}

	return truncate(strings.TrimSpace(string(body)), maxMessageLength)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Redact drops the query string from the URL of a *url.Error, since API keys travel
// as query parameters. Other errors are returned unchanged.
func Redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	target := urlErr.URL
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		u.Fragment = ""
		u.User = nil
		target = u.String()
	} else if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}
	return &url.Error{Op: urlErr.Op, URL: target, Err: urlErr.Err}
}

// NewSingleAttemptClient returns a client whose transport reports every 5xx response
// as an *UpstreamError instead of a response. Libraries that retry on server
// statuses then see one failed request and give up.
func NewSingleAttemptClient(service string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &serverErrorTransport{service: service, next: http.DefaultTransport},
	}
}

type serverErrorTransport struct {
	service string
	next    http.RoundTripper
}

func (t *serverErrorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusInternalServerError {
		return resp, nil
	}

	defer func() { _ = resp.Body.Close() }()
	_, err = readBody(resp, t.service)
	return nil, err
}
