// Package remote is the adapter for the legacy medication backend. It owns
// the HTTP transport, the bearer-token handshake, the connectivity guard,
// and the deterministic offline fallback data.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/infrastructure/config"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/ports"
)

// Client talks to the legacy medication backend.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  ports.TokenSource
	limiter *rate.Limiter
	logger  *logger.Logger

	probeTimeout time.Duration
	fetchTimeout time.Duration
}

// NewClient creates a backend client from configuration.
func NewClient(cfg config.BackendConfig, tokens ports.TokenSource, appLogger *logger.Logger) *Client {
	return &Client{
		http:         &http.Client{Timeout: cfg.FetchTimeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		tokens:       tokens,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		logger:       appLogger.WithComponent("backend_client"),
		probeTimeout: cfg.ProbeTimeout,
		fetchTimeout: cfg.FetchTimeout,
	}
}

type tokenContextKey struct{}

// WithToken scopes a per-request bearer token into the context. The facade
// middleware uses this to pass the mobile client's own token through;
// without it the client falls back to its configured TokenSource.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}

// doJSON performs one JSON round trip: rate-limit wait, bearer header,
// request, decode. A 401 triggers exactly one token refresh and one retry
// of the original call; a second 401 is terminal.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.Connectivity("rate limiter interrupted", err)
	}

	token, fromCtx := tokenFromContext(ctx)
	if !fromCtx {
		var err error
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return apperrors.Auth("no token available", err)
		}
	}

	status, raw, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		// One refresh, one retry. Token lifecycle beyond this belongs to
		// the external auth collaborator.
		refreshed, rerr := c.tokens.Refresh(ctx)
		if rerr != nil {
			return apperrors.Auth("token refresh failed", rerr)
		}
		status, raw, err = c.send(ctx, method, path, body, refreshed)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return apperrors.Auth("token rejected after refresh", nil)
		}
	}

	if status < 200 || status >= 300 {
		return classifyStatus(status, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.SchemaMismatch("unexpected response shape", err)
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, apperrors.Validation("unencodable request body", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, apperrors.Validation("invalid request", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := float64(time.Since(start).Nanoseconds()) / 1e6
	if err != nil {
		c.logger.LogBackendCall(method, path, 0, duration, err)
		return 0, nil, apperrors.Connectivity(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	c.logger.LogBackendCall(method, path, resp.StatusCode, duration, nil)

	return resp.StatusCode, raw, nil
}

// classifyStatus maps a non-2xx backend response onto the error taxonomy.
// A 400/422 whose body complains about a field is the recognized class of
// schema-mismatch rejection that triggers the simplified-payload retry.
func classifyStatus(status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if len(detail) > 200 {
		detail = detail[:200]
	}

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(detail, nil)
	case status == http.StatusUnprocessableEntity:
		return apperrors.SchemaMismatch(detail, nil)
	case status == http.StatusBadRequest && looksLikeSchemaRejection(detail):
		return apperrors.SchemaMismatch(detail, nil)
	case status == http.StatusBadRequest:
		return apperrors.Validation(detail, nil)
	case status >= 500:
		return apperrors.Connectivity(fmt.Sprintf("backend returned %d", status), nil)
	default:
		return apperrors.Connectivity(fmt.Sprintf("unexpected status %d: %s", status, detail), nil)
	}
}

func looksLikeSchemaRejection(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range []string{"unknown field", "unrecognized", "unexpected field", "column", "schema"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
