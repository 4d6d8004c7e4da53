// Package metrics defines and registers all custom Prometheus metrics for
// the identity admin API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// AuthzDecisionsTotal counts every authorization gate evaluation.
// Labels:
//   - resource: the guarded resource ("users", "roles")
//   - operation: the CRUD verb ("list", "get", "create", "update", "delete")
//   - decision: "allowed" or "denied"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization gate decisions.",
	},
	[]string{"resource", "operation", "decision"},
)

// DomainErrorsTotal counts expected domain failures surfaced to clients.
// Label:
//   - kind: the domain error kind ("NotFound", "AlreadyExists", "Validation")
var DomainErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "domain_errors_total",
		Help:      "Total number of expected domain failures returned to clients.",
	},
	[]string{"kind"},
)

// UsersCreatedTotal counts successfully created users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// RolesCreatedTotal counts successfully created role definitions.
var RolesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roles_created_total",
		Help:      "Total number of role definitions created.",
	},
)
