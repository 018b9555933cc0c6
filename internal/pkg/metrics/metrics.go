// Package metrics defines and registers all custom Prometheus metrics for the
// research project data bank. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "databank"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error", or "public"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectMutationsTotal counts successful project mutations.
// Labels:
//   - action: "ADD", "UPDATE" or "DELETE"
//   - role: role of the acting account
var ProjectMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_mutations_total",
		Help:      "Total number of successful project mutations, by action and role.",
	},
	[]string{"action", "role"},
)

// ExportsTotal counts spreadsheet exports served.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of project spreadsheet exports.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEnqueuedTotal counts audit entries accepted by the dispatcher.
var AuditEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_enqueued_total",
		Help:      "Total number of audit entries accepted for asynchronous writing.",
	},
)

// AuditDroppedTotal counts audit entries discarded because the queue was full
// or already closed.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped before being written.",
	},
)

// AuditWriteErrorsTotal counts audit entries the store rejected.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit entries that failed to persist.",
	},
)

// AuditQueueDepth tracks the current number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long a single audit insert takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit entry persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
