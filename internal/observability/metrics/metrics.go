package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	queriesTotal       *prometheus.CounterVec
	queryDuration      *prometheus.HistogramVec
	generationAttempts *prometheus.HistogramVec
	retrievedChunks    *prometheus.HistogramVec
	ingestedChunks     prometheus.Counter
	ingestsTotal       *prometheus.CounterVec
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragkb",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragkb",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ragkb",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragkb",
			Subsystem: "query",
			Name:      "total",
			Help:      "Total answered queries by language and status.",
		},
		[]string{"service", "language", "status"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragkb",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Query execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "language"},
	)
	generationAttempts := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragkb",
			Subsystem: "query",
			Name:      "generation_attempts",
			Help:      "Distribution of generation attempts per answered query.",
			Buckets:   []float64{1, 2, 3, 4, 5},
		},
		[]string{"service", "language"},
	)
	retrievedChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragkb",
			Subsystem: "query",
			Name:      "retrieved_chunks",
			Help:      "Distribution of retrieved chunks per answered query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service", "language"},
	)
	ingestedChunks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ragkb",
			Subsystem: "ingest",
			Name:      "chunks_total",
			Help:      "Total chunks committed to the index.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	ingestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragkb",
			Subsystem: "ingest",
			Name:      "runs_total",
			Help:      "Total ingestion runs by status.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		queriesTotal,
		queryDuration,
		generationAttempts,
		retrievedChunks,
		ingestedChunks,
		ingestsTotal,
	)

	return &ServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		queriesTotal:       queriesTotal,
		queryDuration:      queryDuration,
		generationAttempts: generationAttempts,
		retrievedChunks:    retrievedChunks,
		ingestedChunks:     ingestedChunks,
		ingestsTotal:       ingestsTotal,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *ServerMetrics) RecordQuery(service, language string, attempts, chunkCount int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.queriesTotal.WithLabelValues(service, language, status).Inc()
	if err != nil {
		return
	}
	m.queryDuration.WithLabelValues(service, language).Observe(duration.Seconds())
	m.generationAttempts.WithLabelValues(service, language).Observe(float64(attempts))
	m.retrievedChunks.WithLabelValues(service, language).Observe(float64(chunkCount))
}

func (m *ServerMetrics) RecordIngest(service string, chunkCount int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.ingestsTotal.WithLabelValues(service, status).Inc()
	if chunkCount > 0 {
		m.ingestedChunks.Add(float64(chunkCount))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
