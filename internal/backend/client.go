// Package backend is the client for the remote commerce API that owns
// catalog, cart, order, and account persistence. Every call round-trips
// to the remote service; nothing here caches.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jengamart/storefront/pkg/httpclient"
)

// remoteName labels backend errors in the taxonomy.
const remoteName = "backend"

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the backend commerce API.
type Client struct {
	http    HTTPDoer
	baseURL string
	logger  *slog.Logger
}

// New creates a backend API client. baseURL has any trailing slash
// stripped so paths can be joined naively.
func New(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// envelope is the backend's success wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// doJSON executes one request against the backend. A non-nil body is
// JSON-encoded; a non-nil out receives the "data" payload of the
// response envelope. Non-2xx responses are mapped into the structured
// error taxonomy.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return httpclient.ParseResponseError(resp, remoteName)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode backend %s %s response: %w", method, path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unmarshal backend %s %s payload: %w", method, path, err)
	}
	return nil
}
