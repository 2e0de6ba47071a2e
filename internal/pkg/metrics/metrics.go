// Package metrics defines the custom Prometheus metrics of the account
// service. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; the /metrics endpoint exposes them together with the HTTP
// middleware metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// Lookup results reported on AccountLookupsTotal.
const (
	LookupHit      = "hit"
	LookupMiss     = "miss"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

// AccountsCreatedTotal counts accounts successfully inserted.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of accounts created.",
	},
)

// AccountLookupsTotal counts fetch-by-id lookups.
// Label:
//   - result: "hit" (served from cache), "miss" (served from the database),
//     "not_found", or "error"
var AccountLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of account lookups by id, labelled by result.",
	},
	[]string{"result"},
)

// SideEffectErrorsTotal counts failures of best-effort side effects that do
// not fail the request.
// Label:
//   - target: "cache" or "audit"
var SideEffectErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "side_effect_errors_total",
		Help:      "Total number of failed cache or audit writes.",
	},
	[]string{"target"},
)

// StoreOperationDuration measures how long a single account store call takes.
// Label:
//   - operation: "insert" or "find_by_id"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of account store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)
