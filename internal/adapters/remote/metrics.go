package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Guard observability. Fallback activations are the signal that users are
// seeing demo-mode data, so they get their own counter.
var (
	probeResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medgateway_probe_total",
			Help: "Connectivity probe outcomes",
		},
		[]string{"result"},
	)

	retryAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medgateway_retry_attempts_total",
			Help: "Individual retry attempts against the backend",
		},
	)

	fallbackActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medgateway_fallback_total",
			Help: "Operations that degraded to synthetic fallback data",
		},
		[]string{"operation"},
	)
)
