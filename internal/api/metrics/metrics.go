// Package metrics defines the custom Prometheus collectors of the catalog
// API. HTTP request metrics come from the echoprometheus middleware; these
// count domain outcomes the middleware cannot see.
//
// Collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Accounts ──────────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created user accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Validation and storage ────────────────────────────────────────────────────

// ValidationFailuresTotal counts requests rejected with field errors.
// Label:
//   - resource: "user", "data" or "service"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of requests rejected by field validation.",
	},
	[]string{"resource"},
)

// ConflictsTotal counts unique constraint violations caught at commit, i.e.
// requests that passed the uniqueness pre-check and lost a race.
var ConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_conflicts_total",
		Help:      "Total number of unique constraint violations surfaced at commit.",
	},
	[]string{"resource"},
)

// ── Uploads ───────────────────────────────────────────────────────────────────

// UploadsTotal counts service image uploads.
// Label:
//   - result: "stored", "rejected_extension" or "rejected_size"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of service image uploads, by result.",
	},
	[]string{"result"},
)

// UploadSizeBytes observes the declared size of every received image.
var UploadSizeBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Declared size of received service images.",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 2, 9), // 16KiB .. 4MiB
	},
)
