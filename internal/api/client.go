// Package api provides a client for the Plata personal-finance REST API.
// Each method maps one domain operation to one HTTP call and normalizes
// failures into the package's error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// TokenFunc returns the current auth token, or "" when logged out.
// The session store owns the token; the client only reads it per request.
type TokenFunc func() string

// Client talks to the Plata API. It is stateless apart from configuration
// and safe for concurrent use.
type Client struct {
	baseURL string
	token   TokenFunc
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the given base URL. token may be nil for
// a client that only performs unauthenticated calls.
func NewClient(baseURL string, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
		logger:  slog.Default(),
	}
}

// SetTokenFunc installs the token source after construction. The session
// and the client reference each other, so the composition root breaks the
// cycle here.
func (c *Client) SetTokenFunc(fn TokenFunc) {
	c.token = fn
}

// do performs one request and returns the response body. Status codes are
// mapped onto the error taxonomy; transport failures become ErrUnreachable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Token "+tok)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ErrUnreachable
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 500:
		return nil, ErrServer
	case resp.StatusCode >= 400:
		return nil, &ValidationError{Status: resp.StatusCode, Message: validationMessage(data)}
	}

	return data, nil
}

// getJSON fetches path and decodes the response into out.
func getJSON(ctx context.Context, c *Client, path string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: parsing %s: %w", path, err)
	}
	return nil
}

// sendJSON issues a mutating request and decodes the response into out
// when out is non-nil (delete endpoints return no body).
func sendJSON(ctx context.Context, c *Client, method, path string, payload, out any) error {
	body, err := c.do(ctx, method, path, nil, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: parsing %s: %w", path, err)
	}
	return nil
}
