// Package metrics defines and registers all custom Prometheus metrics for
// the customer API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "customerapi"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "weak_password", "duplicate", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer-token verifications performed by
// the authentication middleware.
// Label:
//   - result: "ok", "invalid", "unknown_subject"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Customer metrics ──────────────────────────────────────────────────────────

// CustomersCreatedTotal counts successfully created customer records.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customer records created.",
	},
)

// CustomerQueriesTotal counts aggregate queries over the customer
// collection.
// Label:
//   - query: "average_age" or "age_range"
var CustomerQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customer_queries_total",
		Help:      "Total number of aggregate customer queries, by query kind.",
	},
	[]string{"query"},
)

// AverageAgeCacheTotal counts cache lookups for the average-age
// aggregate.
// Label:
//   - result: "hit" or "miss"
var AverageAgeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "average_age_cache_total",
		Help:      "Total number of average-age cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
