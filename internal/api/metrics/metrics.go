// Package metrics defines the custom Prometheus metrics of the cake delivery
// API. HTTP request metrics come from the echoprometheus middleware; the
// collectors here cover authentication and entity operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cakedelivery"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "throttled" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRefreshTotal counts refresh-token exchanges.
// Label:
//   - outcome: "success", "rejected" or "error"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token exchanges, by outcome.",
	},
	[]string{"outcome"},
)

// ── Entity metrics ────────────────────────────────────────────────────────────

// EntityOperationsTotal counts CRUD operations served by the entity endpoints.
// Labels:
//   - entity: e.g. "cake", "order"
//   - operation: "list", "get", "search", "exists", "create", "update", "delete"
//   - result: "ok", "not_found", "invalid" or "error"
var EntityOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_operations_total",
		Help:      "Total number of entity operations, by entity, operation and result.",
	},
	[]string{"entity", "operation", "result"},
)

// EntityPageSize observes the number of items returned per paginated read.
var EntityPageSize = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "entity_page_items",
		Help:      "Number of items returned per paginated read.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
	[]string{"entity"},
)
