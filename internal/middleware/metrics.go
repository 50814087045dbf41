package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// requestLabels label every HTTP series the same way. The path label
// carries normalized routes, never raw URLs.
var requestLabels = []string{"method", "path", "status"}

// Metrics is the per-request HTTP instrumentation: request counts,
// latency, in-flight gauge, and response sizes. Business-level counters
// live in telemetry.BusinessMetrics instead.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	responseSize     *prometheus.HistogramVec
}

// NewMetrics builds the HTTP collectors under the given namespace and
// registers them with the default registerer via promauto.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "localplate"
	}

	return &Metrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			requestLabels,
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			requestLabels,
		),
		requestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		responseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
			},
			requestLabels,
		),
	}
}

// Middleware records every request against the collectors.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.statusCode)
		path := normalizePath(r.URL.Path)

		m.requestsTotal.WithLabelValues(r.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		m.responseSize.WithLabelValues(r.Method, path, status).Observe(float64(wrapped.bytesWritten))
	})
}

// Handler serves the scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// metricsResponseWriter captures the status and byte count on the way
// out; the status defaults to 200 because WriteHeader is optional.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// normalizePath normalizes URL paths for metrics labels.
// Dynamic segments like UUIDs and postal codes would otherwise explode
// label cardinality, so they collapse to placeholders.
func normalizePath(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return path
	}

	// Leaving the waitlist carries the postal code in the path.
	if len(segments) == 3 && segments[0] == "api" && segments[1] == "waitlist" {
		return "/api/waitlist/:postal_code"
	}

	changed := false
	for i, seg := range segments {
		if isUUIDSegment(seg) {
			segments[i] = ":id"
			changed = true
		}
	}
	if !changed {
		return path
	}

	normalized := ""
	for _, seg := range segments {
		normalized += "/" + seg
	}
	return normalized
}

// isUUIDSegment reports whether a path segment is a UUID, with or
// without a file extension. Photo URLs name files after their offering.
func isUUIDSegment(seg string) bool {
	if dot := strings.IndexByte(seg, '.'); dot != -1 {
		seg = seg[:dot]
	}
	if len(seg) != 36 {
		return false
	}
	_, err := uuid.Parse(seg)
	return err == nil
}

// splitPath splits a path into segments
func splitPath(path string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	if start < len(path) {
		segments = append(segments, path[start:])
	}
	return segments
}
