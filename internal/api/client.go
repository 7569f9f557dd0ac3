// Package api is the typed client for the storefront REST backend. It owns
// the wire shapes (Spanish field names, matching the backend schema) and maps
// transport failures onto the shared error taxonomy; it holds no state beyond
// connection settings.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tutienda/storefront/pkg/config"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
)

// TokenSource supplies the bearer token attached to authenticated requests,
// or "" when the client is anonymous.
type TokenSource func() string

type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
	token      TokenSource
}

// New builds a backend client from configuration. token may be nil.
func New(cfg config.BackendConfig, logg *logger.Logger, token TokenSource) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		logg:       logg,
		token:      token,
	}, nil
}

// do performs one JSON request/response exchange. out may be nil when the
// caller ignores the body. Extra headers are applied verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBackend, err, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBackend, err, "reading response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, method, path, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBackend, err, fmt.Sprintf("decoding %s %s response", method, path))
	}
	return nil
}

func (c *Client) statusError(status int, method, path string, body []byte) error {
	message := backendMessage(body)
	if message == "" {
		message = fmt.Sprintf("%s %s returned status %d", method, path, status)
	}
	switch status {
	case http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
	case http.StatusConflict:
		return pkgerrors.New(pkgerrors.CodeConflict, message)
	default:
		return pkgerrors.New(pkgerrors.CodeBackend, message).WithDetails(map[string]any{
			"status": status,
			"body":   snippet(body),
		})
	}
}

// backendMessage pulls the backend's `{"error": "..."}` message when present,
// the same field the original client surfaced to users.
func backendMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

func snippet(body []byte) string {
	const max = 256
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > max {
		return trimmed[:max]
	}
	return trimmed
}
