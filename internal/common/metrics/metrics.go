// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_processed_total",
			Help: "Total number of rows processed by disposition",
		},
		[]string{"disposition"},
	)

	DuplicatesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_duplicates_total",
			Help: "Total number of duplicate rows detected",
		},
		[]string{"kind"},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "import_batch_duration_seconds",
			Help: "Duration of batch imports in seconds",
		},
	)

	ImportsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "import_batches_active",
			Help: "Number of imports currently running",
		},
	)

	BatchesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_batches_failed_total",
			Help: "Total number of batches that failed",
		},
		[]string{"error_code"},
	)
)
