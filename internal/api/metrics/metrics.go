// Package metrics defines and registers all custom Prometheus metrics for
// the inventory system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// DefinesTotal counts documents created through the define RPC method.
// Label:
//   - collection: the target collection name (e.g. "StuffCollection")
var DefinesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "defines_total",
		Help:      "Total number of documents created via the define method.",
	},
	[]string{"collection"},
)

// UpdatesTotal counts documents mutated through the update RPC method.
var UpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updates_total",
		Help:      "Total number of documents mutated via the update method.",
	},
	[]string{"collection"},
)

// RemovesTotal counts documents deleted through the removeIt RPC method.
var RemovesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "removes_total",
		Help:      "Total number of documents deleted via the removeIt method.",
	},
	[]string{"collection"},
)

// MethodErrorsTotal counts RPC method calls rejected before or during
// delegation.
// Labels:
//   - method: define, update, removeIt, dumpDatabase, loadFixture
//   - reason: short failure class (e.g. "unauthorized", "not_found")
var MethodErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "method_errors_total",
		Help:      "Total number of failed RPC method calls, by method and reason.",
	},
	[]string{"method", "reason"},
)

// FixtureDefinedTotal counts new documents created by fixture loads.
var FixtureDefinedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fixture_defined_total",
		Help:      "Total number of new documents created by fixture loading.",
	},
	[]string{"collection"},
)

// DumpsTotal counts full database exports.
var DumpsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dumps_total",
		Help:      "Total number of full database dumps.",
	},
)
