// Package httpserver hosts every HTTP-borne adapter on one chi router.
package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes are the handlers mounted on the router. A nil handler is skipped.
type Routes struct {
	GraphQL  http.Handler
	SOAP     http.Handler
	STOMP    http.Handler
	RawFrame http.Handler
	Health   http.HandlerFunc
}

// Paths.
const (
	PathGraphQL  = "/graphql"
	PathSOAP     = "/ws/soap"
	PathSTOMP    = "/ws"
	PathRawFrame = "/ws-simple"
	PathHealth   = "/healthz"
	PathMetrics  = "/metrics"
)

func NewRouter(rt Routes, m *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, PathMetrics, m.Handler())
	}

	if rt.GraphQL != nil {
		r.Method(http.MethodPost, PathGraphQL, rt.GraphQL)
	}
	if rt.SOAP != nil {
		r.Method(http.MethodPost, PathSOAP, rt.SOAP)
	}
	if rt.STOMP != nil {
		r.Method(http.MethodGet, PathSTOMP, rt.STOMP)
	}
	if rt.RawFrame != nil {
		r.Method(http.MethodGet, PathRawFrame, rt.RawFrame)
	}

	health := rt.Health
	if health == nil {
		health = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("OK"))
		}
	}
	r.Get(PathHealth, health)

	return r
}
