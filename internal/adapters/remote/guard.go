package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/infrastructure/config"
	"github.com/medtrack/core/internal/infrastructure/logger"
)

// ErrRetriesExhausted marks a terminal failure after the whole retry budget
// was spent, distinguishable from a single-attempt failure so callers can
// decide between "try again" and permanent fallback.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Reachability is the probe verdict.
type Reachability int

const (
	Unreachable Reachability = iota
	Reachable
)

func (r Reachability) String() string {
	if r == Reachable {
		return "reachable"
	}
	return "unreachable"
}

// Guard decides whether the backend is worth spending a request budget on,
// and wraps remote calls with bounded retry and deterministic fallback.
type Guard struct {
	baseURL         string
	healthEndpoints []string
	probeTimeout    time.Duration
	maxAttempts     int
	retryDelay      time.Duration
	logger          *logger.Logger
}

// NewGuard creates a connectivity guard from configuration.
func NewGuard(cfg config.BackendConfig, appLogger *logger.Logger) *Guard {
	endpoints := cfg.HealthEndpoints
	if len(endpoints) == 0 {
		endpoints = []string{"/health", "/api/health", "/status"}
	}
	return &Guard{
		baseURL:         cfg.BaseURL,
		healthEndpoints: endpoints,
		probeTimeout:    cfg.ProbeTimeout,
		maxAttempts:     cfg.RetryAttempts,
		retryDelay:      cfg.RetryDelay,
		logger:          appLogger.WithComponent("connectivity_guard"),
	}
}

// Probe distinguishes "network/host down" from "API path misconfigured but
// server alive". It first checks bare TCP reachability of the host, then
// walks a short list of candidate health endpoints; the first response with
// any HTTP status other than 404 -- a 401 included -- proves the server is
// alive. Only timeouts and an unbroken run of 404s yield Unreachable.
func (g *Guard) Probe(ctx context.Context) Reachability {
	ctx, cancel := context.WithTimeout(ctx, g.probeTimeout)
	defer cancel()

	host, err := hostPort(g.baseURL)
	if err != nil {
		probeResults.WithLabelValues("unreachable").Inc()
		return Unreachable
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		g.logger.Warnw("Backend host unreachable", "host", host, "error", err.Error())
		probeResults.WithLabelValues("unreachable").Inc()
		return Unreachable
	}
	conn.Close()

	client := &http.Client{Timeout: g.probeTimeout}
	for _, endpoint := range g.healthEndpoints {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+endpoint, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			probeResults.WithLabelValues("reachable").Inc()
			return Reachable
		}
	}

	probeResults.WithLabelValues("unreachable").Inc()
	return Unreachable
}

func hostPort(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	host := u.Host
	if u.Port() == "" {
		switch u.Scheme {
		case "https":
			host += ":443"
		default:
			host += ":80"
		}
	}
	return host, nil
}

// WithRetry calls op up to the configured number of attempts with a fixed
// delay between them. The first success wins; exhausting the budget returns
// a terminal error wrapping ErrRetriesExhausted.
func (g *Guard) WithRetry(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return apperrors.Connectivity("cancelled", err)
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		retryAttempts.Inc()
		g.logger.Warnw("Backend call failed", "attempt", attempt, "max_attempts", g.maxAttempts, "error", lastErr.Error())

		if attempt == g.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return apperrors.Connectivity("cancelled during retry wait", ctx.Err())
		case <-time.After(g.retryDelay):
		}
	}

	return apperrors.ConnectivityExhausted(
		fmt.Sprintf("gave up after %d attempts", g.maxAttempts),
		fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr),
	)
}

// FallbackResult tags fallback data so synthetic records are never
// mistaken for server-confirmed ones.
type FallbackResult[T any] struct {
	Data      T
	Synthetic bool
}

// WithFallback probes the backend first. If it is unreachable, op is never
// called and the fallback is returned tagged synthetic. If it is reachable
// but op still fails, the fallback is again returned tagged synthetic
// rather than propagating the error -- unless noFallback marks op as a
// destructive write, in which case the error passes through untouched.
func WithFallback[T any](ctx context.Context, g *Guard, operation string, op func(ctx context.Context) (T, error), fallback T, noFallback bool) (FallbackResult[T], error) {
	if g.Probe(ctx) == Unreachable {
		if noFallback {
			return FallbackResult[T]{}, apperrors.ConnectivityExhausted("backend unreachable", nil)
		}
		fallbackActivations.WithLabelValues(operation).Inc()
		g.logger.LogFallback(operation, "backend unreachable")
		return FallbackResult[T]{Data: fallback, Synthetic: true}, nil
	}

	var data T
	err := g.WithRetry(ctx, func(ctx context.Context) error {
		var opErr error
		data, opErr = op(ctx)
		return opErr
	})
	if err != nil {
		if noFallback {
			return FallbackResult[T]{}, err
		}
		fallbackActivations.WithLabelValues(operation).Inc()
		g.logger.LogFallback(operation, err.Error())
		return FallbackResult[T]{Data: fallback, Synthetic: true}, nil
	}

	return FallbackResult[T]{Data: data}, nil
}
