package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics owns a private registry so tests can construct several
// instances without collisions. It doubles as the MetricsRecorder port for
// the sweeper and the search task registry.
type HTTPServerMetrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	sweepDeletedTotal  *prometheus.CounterVec
	sweepFailuresTotal *prometheus.CounterVec
	searchTasksTotal   *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offerdesk",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "offerdesk",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "offerdesk",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	sweepDeletedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offerdesk",
			Subsystem: "sweeper",
			Name:      "deleted_total",
			Help:      "Total records removed by referential-integrity sweeps.",
		},
		[]string{"service", "entity"},
	)
	sweepFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offerdesk",
			Subsystem: "sweeper",
			Name:      "failures_total",
			Help:      "Total failed sweep runs.",
		},
		[]string{"service", "entity"},
	)
	searchTasksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offerdesk",
			Subsystem: "search",
			Name:      "tasks_total",
			Help:      "Total tag-search task lifecycle events.",
		},
		[]string{"service", "event"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		sweepDeletedTotal,
		sweepFailuresTotal,
		searchTasksTotal,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		service:            service,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		sweepDeletedTotal:  sweepDeletedTotal,
		sweepFailuresTotal: sweepFailuresTotal,
		searchTasksTotal:   searchTasksTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordSweep(entity string, deleted int) {
	m.sweepDeletedTotal.WithLabelValues(m.service, entity).Add(float64(deleted))
}

func (m *HTTPServerMetrics) RecordSweepFailure(entity string) {
	m.sweepFailuresTotal.WithLabelValues(m.service, entity).Inc()
}

func (m *HTTPServerMetrics) RecordSearchTask(event string) {
	if event == "" {
		event = "unknown"
	}
	m.searchTasksTotal.WithLabelValues(m.service, event).Inc()
}

// normalizePath collapses ids into route templates to keep label
// cardinality bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/assets/"):
		return "/assets/{file}"
	case strings.HasPrefix(path, "/tags/search/"):
		return "/tags/search/{task_id}"
	case strings.HasPrefix(path, "/customers/"):
		return "/customers/{id}"
	case strings.HasPrefix(path, "/offers/"):
		return normalizeOfferPath(path)
	default:
		return path
	}
}

func normalizeOfferPath(path string) string {
	rest := strings.TrimPrefix(path, "/offers/")
	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1:
		return "/offers/{id}"
	case parts[1] == "status":
		return "/offers/{id}/status"
	case parts[1] == "comments":
		if len(parts) > 2 {
			return "/offers/{id}/comments/{comment_id}"
		}
		return "/offers/{id}/comments"
	case parts[1] == "files":
		switch {
		case len(parts) > 3:
			if len(parts) > 4 {
				return "/offers/{id}/files/{file_id}/tags/{tag_id}"
			}
			return "/offers/{id}/files/{file_id}/tags"
		default:
			return "/offers/{id}/files"
		}
	default:
		return "/offers/{id}"
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

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
