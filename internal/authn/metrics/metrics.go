package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for client-side flow operations.
type Metrics struct {
	FlowsStarted         prometheus.Counter
	AuthAttempts         prometheus.Counter
	AuthFailures         *prometheus.CounterVec
	FlowsCompleted       prometheus.Counter
	TokenExchanges       prometheus.Counter
	TokenRefreshes       prometheus.Counter
	Logouts              prometheus.Counter
	RedirectWaits        prometheus.Gauge
	AuthorizeDurationMs  prometheus.Histogram
	AuthenticateDuration prometheus.Histogram
}

// New registers and returns flow client metrics collectors.
func New() *Metrics {
	return &Metrics{
		FlowsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flowauth_flows_started_total",
			Help: "Total number of authentication flows started",
		}),
		AuthAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flowauth_auth_attempts_total",
			Help: "Total number of authenticate submissions",
		}),
		AuthFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flowauth_auth_failures_total",
			Help: "Total number of failed flow operations by error code",
		}, []string{"code"}),
		FlowsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flowauth_flows_completed_total",
			Help: "Total number of flows that reached the authenticated state",
		}),
		TokenExchanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flowauth_token_exchanges_total",
			Help: "Total number of authorization code exchanges",
		}),
		TokenRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flowauth_token_refreshes_total",
			Help: "Total number of refresh grant exchanges",
		}),
		Logouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flowauth_logouts_total",
			Help: "Total number of completed logouts",
		}),
		RedirectWaits: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "flowauth_redirect_waits",
			Help: "Number of authenticate calls currently suspended on a redirect",
		}),
		AuthorizeDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowauth_authorize_duration_ms",
			Help:    "Duration of authorize requests in milliseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		AuthenticateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowauth_authenticate_duration_ms",
			Help:    "Duration of authenticate rounds in milliseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
	}
}
