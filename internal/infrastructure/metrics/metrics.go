// Package metrics holds the prometheus collectors exported by the service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Log metrics
	AppendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sensorlog_appends_total",
		Help: "Total number of append attempts by sensor and outcome",
	}, []string{"sensor", "status"})
	LogRecreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sensorlog_log_recreated_total",
		Help: "Total number of backing files recreated after external deletion",
	}, []string{"sensor"})
	QueryDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sensorlog_query_duration_seconds",
		Help:    "Duration of range queries in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"sensor"})
	QueryFormatErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sensorlog_query_format_errors_total",
		Help: "Total number of range queries aborted by a malformed line",
	}, []string{"sensor"})

	// Ingest metrics
	UnknownSensorTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensorlog_unknown_sensor_submissions_total",
		Help: "Total number of submissions addressed to unconfigured sensors",
	})
	SimulatedBatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensorlog_simulated_batches_total",
		Help: "Total number of batches produced by the simulated sensor feed",
	})
	DroppedSubmissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensorlog_dropped_submissions_total",
		Help: "Total number of submissions discarded because no ingest workers are configured",
	})
	IngestWorkersActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sensorlog_ingest_workers_active",
		Help: "Number of active ingest worker goroutines",
	})

	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensorlog_http_requests_total",
		Help: "Total number of ops HTTP requests",
	})
	HTTPRequestErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sensorlog_http_request_errors_total",
		Help: "Total number of ops HTTP requests answered with an error status",
	})

	registerOnce sync.Once
)

// InitMetrics registers all collectors with the default registry.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AppendsTotal,
			LogRecreatedTotal,
			QueryDurationSeconds,
			QueryFormatErrorsTotal,
			UnknownSensorTotal,
			SimulatedBatchesTotal,
			DroppedSubmissionsTotal,
			IngestWorkersActive,
			HTTPRequestsTotal,
			HTTPRequestErrorsTotal,
		)
	})
}

// Handler returns an HTTP handler that exposes the registered metrics.
func Handler() http.Handler {
	InitMetrics()
	return promhttp.Handler()
}

// RecordAppend counts one append outcome for a sensor.
func RecordAppend(sensor, status string) {
	AppendsTotal.WithLabelValues(sensor, status).Inc()
}

// RecordRecreated counts a backing file recreation.
func RecordRecreated(sensor string) {
	LogRecreatedTotal.WithLabelValues(sensor).Inc()
}

// ObserveQuery tracks a completed range query.
func ObserveQuery(sensor string, duration time.Duration, formatErr bool) {
	if duration < 0 {
		duration = 0
	}
	QueryDurationSeconds.WithLabelValues(sensor).Observe(duration.Seconds())
	if formatErr {
		QueryFormatErrorsTotal.WithLabelValues(sensor).Inc()
	}
}

func IncUnknownSensor() {
	UnknownSensorTotal.Inc()
}

func IncSimulatedBatches() {
	SimulatedBatchesTotal.Inc()
}

// AddDroppedSubmissions counts submissions discarded without being stored.
func AddDroppedSubmissions(n int) {
	if n > 0 {
		DroppedSubmissionsTotal.Add(float64(n))
	}
}

func WorkerStarted() {
	IngestWorkersActive.Inc()
}

func WorkerFinished() {
	IngestWorkersActive.Dec()
}

// HTTPMiddleware counts requests and error responses.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			HTTPRequestsTotal.Inc()
			if recorder.status >= http.StatusBadRequest {
				HTTPRequestErrorsTotal.Inc()
			}
		}()

		next.ServeHTTP(recorder, r)
	})
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
