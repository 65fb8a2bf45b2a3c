// Package metrics defines the Prometheus collectors of the job tracker page
// server. It is the single source of truth for metric names, labels, and help
// strings.
//
// Collectors are registered with the default registry through promauto, so
// they appear on /metrics as soon as the package is imported.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobtracker"

// ── Page metrics ─────────────────────────────────────────────────────────────

// UIActionsTotal counts button presses received by the page server.
// Label:
//   - action: the form action (e.g. "login", "add_job", "delete_job")
var UIActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ui_actions_total",
		Help:      "Total number of page actions submitted, by action.",
	},
	[]string{"action"},
)

// OperationsTotal counts finished client operations.
// Labels:
//   - operation: e.g. "get_jobs", "login"
//   - outcome: "success", "failure", or "guarded" (skipped for lack of a token)
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of client operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// PageRequestsTotal counts requests served by the page server.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (e.g. "/actions/jobs/:id/delete")
//   - code: response status code
var PageRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of requests served by the page server.",
	},
	[]string{"method", "route", "code"},
)

// PageRequestDuration measures page server latency, backend calls included.
var PageRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of requests served by the page server.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// Middleware records PageRequestsTotal and PageRequestDuration.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			code := c.Response().Status
			if err != nil {
				code = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					code = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			PageRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
			PageRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// ── Backend metrics ──────────────────────────────────────────────────────────

// BackendRequestsTotal counts round-trips to the Job Tracker REST API.
// Labels (filled by promhttp):
//   - code: HTTP status code returned by the backend
//   - method: HTTP method
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Total number of requests sent to the Job Tracker API.",
	},
	[]string{"code", "method"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Duration of requests sent to the Job Tracker API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"code", "method"},
)

// InstrumentTransport wraps next so every backend round-trip is counted and
// timed. A nil next means http.DefaultTransport.
func InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(BackendRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(BackendRequestDuration, next))
}

// Recorder feeds operation outcomes into OperationsTotal.
type Recorder struct{}

func (Recorder) Observe(operation, outcome string) {
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
}
