// Package metrics defines and registers all custom Prometheus metrics for
// the directory API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto; HTTP-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthRequestsTotal counts principal resolutions on protected endpoints.
// Label:
//   - result: "ok", "missing_header", "invalid_token", "principal_not_found"
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of authentication resolutions, labelled by result.",
	},
	[]string{"result"},
)

// AuditEventsTotal counts audit events admitted to the dispatcher.
// Label:
//   - type: audit event type (e.g. "login_failed", "access_denied")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events recorded, labelled by type.",
	},
	[]string{"type"},
)
