// Package search provides the Serper web-search client and the formatter that
// turns a search response into a plain-text block for prompt injection.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the Serper search API endpoint.
	DefaultEndpoint = "https://google.serper.dev/search"

	// domainQualifier is appended to every raw query to bias results toward
	// medical sources.
	domainQualifier = " medical information"

	// DefaultMaxResults bounds the number of organic results requested,
	// capping prompt size and latency.
	DefaultMaxResults = 5
)

// serperRequest is the JSON body sent to the Serper API.
type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// Client issues single-shot queries against the Serper search API.
// Failures are folded into the returned Result rather than surfaced as
// errors: a degraded search never aborts a chat turn. No retries.
type Client struct {
	apiKey     string
	endpoint   string
	maxResults int
	httpClient *http.Client
}

// Option configures a Client created with NewClient.
type Option func(*Client)

// WithEndpoint overrides the Serper endpoint URL. Used by tests and by the
// search.endpoint config key.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithMaxResults overrides the number of organic results requested.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithHTTPClient overrides the default HTTP client, e.g. to change the timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Serper search client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		maxResults: DefaultMaxResults,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search executes one search for the given user query. The raw query gets the
// medical domain qualifier appended before being sent. Any transport or
// provider failure is reported through Result.Error.
func (c *Client) Search(ctx context.Context, query string) Result {
	payload, err := json.Marshal(serperRequest{
		Query: query + domainQualifier,
		Num:   c.maxResults,
	})
	if err != nil {
		return Result{Error: fmt.Sprintf("encoding search request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Error: fmt.Sprintf("creating search request: %v", err)}
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Error: fmt.Sprintf("sending search request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{Error: fmt.Sprintf("search provider returned status %d: %s", resp.StatusCode, string(body))}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{Error: fmt.Sprintf("decoding search response: %v", err)}
	}

	return result
}
