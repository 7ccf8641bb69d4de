package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed HTTP client for the MediAssist API. CLI commands use it
// to drive a running mediassistd instead of building the pipeline in-process.
type Client struct {
	target string
	http   *http.Client
}

// NewClient creates a client for the API server at target, e.g.
// http://localhost:8080.
func NewClient(target string) *Client {
	return &Client{
		target: strings.TrimRight(target, "/"),
		http: &http.Client{
			// LLM turns can be slow
			Timeout: 5 * time.Minute,
		},
	}
}

// Target returns the server URL this client talks to.
func (c *Client) Target() string {
	return c.target
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

// CreateSession creates a fresh session seeded with the greeting.
func (c *Client) CreateSession(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches the display transcript for a session.
func (c *Client) History(ctx context.Context, sessionID string) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/sessions/"+sessionID+"/history", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat runs one chat turn and blocks until the reply is ready.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sessions/"+sessionID+"/chat", ChatRequest{Message: message}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetSearchMode toggles search augmentation for a session.
func (c *Client) SetSearchMode(ctx context.Context, sessionID string, enabled bool) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.do(ctx, http.MethodPut, "/v1/sessions/"+sessionID+"/search", SearchModeRequest{Enabled: enabled}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearHistory empties a session's histories, restoring the greeting-only
// display state.
func (c *Client) ClearHistory(ctx context.Context, sessionID string) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sessions/"+sessionID+"/clear", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.target+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to MediAssist API at %s: %w", c.target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("api request failed (HTTP %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("api request failed (HTTP %d): %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
