// Package metrics owns the server's Prometheus collectors. Each Recorder has
// its own registry so tests and multiple servers in one process never clash.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK               = "ok"
	OutcomeNotFound         = "not_found"
	OutcomeInvalidID        = "invalid_id"
	OutcomeValidation       = "validation"
	OutcomeUnknownOperation = "unknown_operation"
	OutcomeError            = "error"
)

type Recorder struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bookhub",
				Subsystem: "adapter",
				Name:      "requests_total",
				Help:      "Catalog requests handled, by adapter, operation and outcome.",
			},
			[]string{"adapter", "operation", "outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bookhub",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests served, by route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bookhub",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route"},
		),
	}
	r.registry.MustRegister(r.requests, r.httpRequests, r.httpDuration)
	return r
}

// Observe counts one adapter request; err decides the outcome label.
func (r *Recorder) Observe(adapter, operation string, err error) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(adapter, operation, Outcome(err)).Inc()
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, common.ErrorNotFound):
		return OutcomeNotFound
	case errors.Is(err, common.ErrorInvalidID):
		return OutcomeInvalidID
	case errors.Is(err, common.ErrorValidation):
		return OutcomeValidation
	case errors.Is(err, common.ErrorUnknownOperation):
		return OutcomeUnknownOperation
	default:
		return OutcomeError
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry is exposed for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Middleware records status and latency per chi route pattern. Raw paths are
// never used as labels.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rc := chi.RouteContext(req.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
