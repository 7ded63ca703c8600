// Package metrics exposes Prometheus metrics for parsing and imports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DocumentsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parts_documents_parsed_total",
			Help: "Documents run through the extraction pipeline, by line-item mode",
		},
		[]string{"mode"},
	)

	LineItemsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parts_line_items_extracted_total",
			Help: "Line items extracted, by inferred category",
		},
		[]string{"category"},
	)

	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parts_imports_total",
			Help: "Document imports, by outcome",
		},
		[]string{"status"},
	)

	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parts_import_duration_seconds",
			Help:    "Time taken to import one document",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parts_records_written_total",
			Help: "Rows written by imports",
		},
		[]string{"entity", "op"},
	)
)

// Import outcomes.
const (
	StatusCompleted    = "completed"
	StatusDeduplicated = "deduplicated"
	StatusFailed       = "failed"
)

// RecordParse records one pipeline run and its line-item categories.
func RecordParse(mode string, categories []string) {
	DocumentsParsed.WithLabelValues(mode).Inc()
	for _, c := range categories {
		LineItemsExtracted.WithLabelValues(c).Inc()
	}
}

// RecordImport records an import outcome and its duration.
func RecordImport(status string, d time.Duration) {
	ImportsTotal.WithLabelValues(status).Inc()
	ImportDuration.Observe(d.Seconds())
}

// RecordWrite counts n rows written to entity with op insert or update.
func RecordWrite(entity, op string, n int) {
	if n > 0 {
		RecordsWritten.WithLabelValues(entity, op).Add(float64(n))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
