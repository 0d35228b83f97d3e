// Package client talks to the analysis backend. Scoring, extraction,
// fact checking and bias detection all happen there; this side only
// submits input and receives the payload.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/veridex/trustlens/internal/model"
)

// Client is an HTTP client for the analysis backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxBytes   int64
	minWords   int
}

// New creates a backend client from configuration.
func New(cfg model.BackendConfig, minWords int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		maxBytes: cfg.MaxBodyBytes,
		minWords: minWords,
	}
}

// AnalyzeRequest is the body of POST /api/analyze. Exactly one of URL
// or Text should carry the input.
type AnalyzeRequest struct {
	URL   string `json:"url,omitempty"`
	Text  string `json:"text,omitempty"`
	IsPro bool   `json:"is_pro,omitempty"`
}

// Analyze submits an article for analysis and returns the raw payload.
// Input is validated before any network traffic.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (json.RawMessage, error) {
	if err := c.validate(req); err != nil {
		return nil, err
	}
	return c.postJSON(ctx, "/api/analyze", req)
}

// AnalyzeTranscript submits a video/audio transcript for analysis.
func (c *Client) AnalyzeTranscript(ctx context.Context, text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Reason: "transcript text is empty"}
	}
	return c.postJSON(ctx, "/api/transcript/analyze", map[string]string{"text": text})
}

// DebateRequest asks the backend to argue about a finished analysis.
type DebateRequest struct {
	Analysis json.RawMessage `json:"analysis"`
	Question string          `json:"question"`
}

// Debate forwards a debate request to the backend.
func (c *Client) Debate(ctx context.Context, req DebateRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, &ValidationError{Reason: "debate question is empty"}
	}
	return c.postJSON(ctx, "/api/debate", req)
}

// GeneratePDF asks the backend to render a full analysis payload as a
// PDF and returns the document bytes.
func (c *Client) GeneratePDF(ctx context.Context, analysis json.RawMessage) ([]byte, error) {
	if len(analysis) == 0 {
		return nil, &ValidationError{Reason: "no analysis to export"}
	}
	return c.post(ctx, "/api/generate-pdf", "application/json", bytes.NewReader(analysis))
}

// validate enforces the input rules before any network call: one input
// mode, a well-formed http(s) URL, and a minimum amount of text.
func (c *Client) validate(req AnalyzeRequest) error {
	hasURL := strings.TrimSpace(req.URL) != ""
	hasText := strings.TrimSpace(req.Text) != ""

	switch {
	case !hasURL && !hasText:
		return &ValidationError{Reason: "provide an article URL or its text"}
	case hasURL && hasText:
		return &ValidationError{Reason: "provide either a URL or text, not both"}
	case hasURL:
		parsed, err := url.Parse(strings.TrimSpace(req.URL))
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return &ValidationError{Reason: fmt.Sprintf("malformed URL: %s", req.URL)}
		}
	default:
		if words := len(strings.Fields(req.Text)); words < c.minWords {
			return &ValidationError{Reason: fmt.Sprintf("article text too short: %d words (minimum %d)", words, c.minWords)}
		}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.post(ctx, endpoint, "application/json", bytes.NewReader(payload))
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json, application/pdf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Endpoint: endpoint}
		}
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Endpoint: endpoint}
		}
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(data, resp.StatusCode),
		}
	}
	return data, nil
}

// apiErrorMessage extracts the {error} body the backend sends with
// non-2xx statuses, falling back to the HTTP status text.
func apiErrorMessage(body []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(status)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
