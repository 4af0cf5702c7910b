package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Media-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "media_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "site",
			Subsystem: "media_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 120},
		},
		[]string{"method", "endpoint"},
	)

	// Upload counters
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "media_api",
			Name:      "uploads_total",
			Help:      "Total media uploads by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	// Upload bytes counter
	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "media_api",
			Name:      "upload_bytes_total",
			Help:      "Total bytes uploaded",
		},
		[]string{"kind"},
	)

	// Delete counters
	DeletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "media_api",
			Name:      "deletes_total",
			Help:      "Total media deletes by outcome",
		},
		[]string{"status"},
	)

	// Storage operations counter
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "media_api",
			Name:      "storage_operations_total",
			Help:      "Total object storage operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// Storage operation duration
	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "site",
			Subsystem: "media_api",
			Name:      "storage_duration_seconds",
			Help:      "Object storage operation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 30},
		},
		[]string{"backend", "operation"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordUpload records a media upload
func RecordUpload(kind, status string, bytes int64) {
	UploadsTotal.WithLabelValues(kind, status).Inc()
	if status == "success" {
		UploadBytesTotal.WithLabelValues(kind).Add(float64(bytes))
	}
}

// RecordDelete records a media delete
func RecordDelete(status string) {
	DeletesTotal.WithLabelValues(status).Inc()
}

// RecordStorageOperation records an object storage call
func RecordStorageOperation(backend, operation, status string, durationSec float64) {
	StorageOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	StorageDuration.WithLabelValues(backend, operation).Observe(durationSec)
}
