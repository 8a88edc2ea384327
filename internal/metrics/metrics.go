package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interview"

var httpLabels = []string{"service", "method", "route", "code"}

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by route pattern and status code.",
	}, httpLabels)

	// API calls are in-memory state transitions plus an optional upsert, so
	// the buckets stop at a few seconds.
	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, excluding websocket streams.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, httpLabels)

	httpInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "HTTP requests currently being served, streams included.",
	}, []string{"service"})

	streamConnections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "stream_connections_total",
		Help:      "Websocket stream connections, counted when they close.",
	}, []string{"service", "route"})
)

// statusWriter remembers the status code and forwards the optional
// interfaces websocket upgrades and streaming need.
type statusWriter struct {
	http.ResponseWriter
	code     int
	hijacked bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: response writer cannot be hijacked")
	}
	w.hijacked = true
	return h.Hijack()
}

// Middleware records request metrics for service. Requests are labelled with
// the chi route pattern, never the raw path, so session ids stay out of the
// label set. Scrapes of /metrics are not recorded.
func Middleware(service string) func(http.Handler) http.Handler {
	requests := httpRequests.MustCurryWith(prometheus.Labels{"service": service})
	latency := httpLatency.MustCurryWith(prometheus.Labels{"service": service})
	inFlight := httpInFlight.WithLabelValues(service)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			inFlight.Inc()
			defer inFlight.Dec()

			next.ServeHTTP(sw, r)

			route := routePattern(r)
			if sw.hijacked || isUpgrade(r) {
				streamConnections.WithLabelValues(service, route).Inc()
				return
			}

			code := sw.code
			if code == 0 {
				code = http.StatusOK
			}
			labels := prometheus.Labels{"method": r.Method, "route": route, "code": strconv.Itoa(code)}
			requests.With(labels).Inc()
			latency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
