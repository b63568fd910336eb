// Package metrics defines and registers all custom Prometheus metrics for
// the product auth API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init; the router
// exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authapi"

// LoginsTotal counts login attempts.
// Labels:
//   - mode: "basic" or "token"
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by auth mode and outcome.",
	},
	[]string{"mode", "outcome"},
)

// TokenVerificationsTotal counts bearer token verifications.
// Label:
//   - result: "ok", "expired", "invalid_signature", "malformed"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts authorization decisions.
// Label:
//   - decision: "allow", "unauthenticated", "forbidden"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by outcome.",
	},
	[]string{"decision"},
)

// ActiveSessions tracks the number of currently bound sessions
// (credential mode only; always zero in token mode).
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of currently active credential-mode sessions.",
	},
)

// LoginDuration measures end-to-end login handling, hashing included.
// Label:
//   - outcome: "success" or "failure"
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login requests from bind to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"outcome"},
)
