// Package client provides a typed Go client for the ParcelDesk API.
// GET responses are cached per entity and invalidated by mutations, and
// an expired access token is refreshed and retried transparently.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrSessionExpired is returned when the access token is rejected and
// the refresh token cannot produce a new pair. The caller must log in
// again.
var ErrSessionExpired = errors.New("session expired, login required")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	TraceID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// errorBody mirrors the server's error payload.
type errorBody struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCacheTTL overrides the staleness window of cached GET responses.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache.ttl = ttl }
}

// Client is a ParcelDesk API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *queryCache

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   newQueryCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokens installs a credential pair, e.g. one restored from storage.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// Tokens returns the current credential pair.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// do performs an authenticated request. On a 401 it refreshes the token
// pair once and retries; a failed refresh surfaces as ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}

	return decodeResponse(resp, out)
}

// send issues one HTTP request with the current access token.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(req)
}

// refresh exchanges the refresh token for a new pair. Any failure means
// the session is over.
func (c *Client) refresh(ctx context.Context) error {
	c.mu.Lock()
	refreshToken := c.refreshToken
	c.mu.Unlock()
	if refreshToken == "" {
		return ErrSessionExpired
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return ErrSessionExpired
	}

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeResponse(resp, &pair); err != nil {
		return ErrSessionExpired
	}

	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// decodeResponse reads the response, mapping non-2xx statuses to
// APIError and decoding success bodies into out when provided.
func decodeResponse(resp *http.Response, out interface{}) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body errorBody
		message := http.StatusText(resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			message = body.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message, TraceID: body.TraceID}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// getCached fetches a GET endpoint through the query cache. Fresh cache
// hits skip the network entirely.
func (c *Client) getCached(ctx context.Context, entity, path string, out interface{}) error {
	if raw, ok := c.cache.get(entity, path); ok {
		return json.Unmarshal(raw, out)
	}

	var payload json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return err
	}

	c.cache.put(entity, path, payload)
	return json.Unmarshal(payload, out)
}

// mutate performs a write and invalidates the affected entities' cached
// queries.
func (c *Client) mutate(ctx context.Context, method, path string, body, out interface{}, entities ...string) error {
	if err := c.do(ctx, method, path, body, out); err != nil {
		return err
	}
	for _, entity := range entities {
		c.cache.invalidate(entity)
	}
	return nil
}
