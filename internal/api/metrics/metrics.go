// Package metrics defines the custom Prometheus metrics for the tracker
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// AuthzDecisionsTotal counts authorization engine decisions.
// Labels:
//   - resource: project, contributor, issue, comment
//   - action: read, create, update, delete
//   - decision: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by resource, action and outcome.",
	},
	[]string{"resource", "action", "decision"},
)

// EntitiesCreatedTotal counts entities created through the API.
// Label:
//   - kind: user, project, contributor, issue, comment
var EntitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_created_total",
		Help:      "Total number of entities created, by kind.",
	},
	[]string{"kind"},
)

// LoginAttemptsTotal counts credential exchanges on the token endpoint.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
