// Package api implements the DeloConnect REST client. Every call carries the
// bearer token, runs under the caller's context, and maps auth failures onto
// ErrUnauthorized so the views can gate uniformly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"deloconnect/internal/config"
	"deloconnect/internal/logging"
)

// Client talks to the DeloConnect backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient builds a client from config. The token may be empty; every call
// then fails fast with ErrNoToken until SetToken is called (auth gate).
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		token:   cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout(),
		},
	}
}

// NewClientWith builds a client from explicit parts; used by tests and by
// callers that manage config themselves.
func NewClientWith(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken swaps the bearer token. Called by the config watcher when a
// refreshed token lands on disk.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// HasToken reports whether a token is configured.
func (c *Client) HasToken() bool {
	return c.Token() != ""
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := c.Token()
	if token == "" {
		return ErrNoToken
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logging.Get(logging.CategoryAPI)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	log.Debug("%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("%s %s: malformed response body: %v", method, path, err)
		return fmt.Errorf("%s %s: malformed response body: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// readErrorMessage pulls a human-readable message out of an error body.
// Backends answer either {"message": ...} or {"detail": ...}.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Detail != "" {
			return body.Detail
		}
	}
	return strings.TrimSpace(string(data))
}
