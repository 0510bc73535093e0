package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"consentd/internal/platform/middleware"
)

// Registrar attaches a group of routes to the router. Domain handlers and the
// health handler all implement it, which keeps this package free of domain
// imports.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires all public endpoints with the middleware stack.
func NewRouter(logger *slog.Logger, registrars ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Handle("/metrics", promhttp.Handler())

	for _, registrar := range registrars {
		registrar.Register(r)
	}

	return r
}
