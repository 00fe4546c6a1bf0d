// Package metrics defines and registers all custom Prometheus metrics for the
// task API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry on import, which is
// the registry echoprometheus serves on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceMutationsTotal counts successful writes.
// Labels:
//   - resource: "task", "category" or "user"
//   - op: "create", "replay", "update" or "delete"
var ResourceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_mutations_total",
		Help:      "Total number of successful task, category and user mutations.",
	},
	[]string{"resource", "op"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registrations and logins by outcome.
// Labels:
//   - action: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by result.",
	},
	[]string{"action", "result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamDuration measures calls to the image host and the profile scraper.
// Labels:
//   - upstream: "cloudinary" or "linkedin"
//   - result: "success" or "failure"
var UpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Duration of calls to third-party collaborators.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"upstream", "result"},
)

// ── Error metrics ─────────────────────────────────────────────────────────────

// APIErrorsTotal counts error responses by kind.
// Label:
//   - kind: "unauthorized", "conflict", "not_found", "invalid_argument",
//     "upstream", "http" or "internal"
var APIErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_errors_total",
		Help:      "Total number of error responses, by error kind.",
	},
	[]string{"kind"},
)

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
