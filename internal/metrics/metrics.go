// Package metrics provides Prometheus metrics for the drivescope tools.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drivescope/core/internal/models"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drivescope_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drivescope_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Analysis metrics
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drivescope_analyses_total",
			Help: "Total number of snapshot analyses",
		},
		[]string{"status"},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drivescope_analysis_duration_seconds",
			Help:    "Time to parse, index and analyze one snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)

	snapshotEntries = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drivescope_snapshot_entries",
			Help:    "Number of entries per analyzed snapshot",
			Buckets: prometheus.ExponentialBuckets(10, 10, 7),
		},
	)

	lastFindings = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "drivescope_last_analysis_findings",
			Help: "Findings of the most recent analysis by kind",
		},
		[]string{"kind"},
	)

	reclaimableBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "drivescope_last_analysis_reclaimable_bytes",
			Help: "Space held by exact duplicate copies in the most recent analysis",
		},
	)

	// Storage metrics
	storageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drivescope_storage_operation_duration_seconds",
			Help:    "Snapshot and report storage operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	storageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drivescope_storage_operations_total",
			Help: "Total snapshot and report storage operations",
		},
		[]string{"backend", "operation", "status"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAnalysisFailure counts a snapshot rejected before any pass ran.
func RecordAnalysisFailure() {
	analysesTotal.WithLabelValues(status(false)).Inc()
}

// RecordAnalysis records a completed run and publishes its headline findings.
func RecordAnalysis(entries int, report *models.Report, duration time.Duration) {
	analysesTotal.WithLabelValues(status(true)).Inc()
	analysisDuration.Observe(duration.Seconds())
	snapshotEntries.Observe(float64(entries))

	lastFindings.WithLabelValues("orphan_folders").Set(float64(len(report.Structure.Orphans)))
	lastFindings.WithLabelValues("empty_folders").Set(float64(len(report.Structure.Empty)))
	lastFindings.WithLabelValues("potential_duplicates").Set(float64(len(report.Duplicates.Potential)))
	lastFindings.WithLabelValues("exact_duplicates").Set(float64(len(report.Duplicates.Exact)))
	lastFindings.WithLabelValues("old_files").Set(float64(len(report.OldFiles)))
	lastFindings.WithLabelValues("unused_files").Set(float64(len(report.Unused)))
	reclaimableBytes.Set(float64(report.Duplicates.TotalReclaimable))
}

// RecordStorageOperation records a storage read or write.
func RecordStorageOperation(backend, operation string, duration time.Duration, success bool) {
	storageOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	storageOperationsTotal.WithLabelValues(backend, operation, status(success)).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		RecordHTTPRequest(r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}
