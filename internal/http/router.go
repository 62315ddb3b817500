// Package httpapi assembles the public HTTP surface: the middleware chain,
// module routes under /api, health probes and the metrics endpoint.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pezkuwi/internal/platform/metrics"
	"pezkuwi/internal/platform/middleware"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/platform/middleware/metadata"
	"pezkuwi/pkg/platform/middleware/requesttime"
)

const welcomeMessage = "PezkuwiChain API - Blockchain for Kurdish Nation"

// Module is a feature handler that mounts its own routes.
type Module interface {
	Register(r chi.Router)
}

// Config carries the router's collaborators. Zero values disable the
// corresponding concern.
type Config struct {
	Logger         *slog.Logger
	Gatherer       prometheus.Gatherer
	Metrics        *metrics.Metrics
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
	Readiness      []Check
}

// NewRouter wires the middleware chain and mounts every module under /api.
func NewRouter(cfg Config, modules ...Module) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Instrument(cfg.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not_found", ErrorDescription: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "method_not_allowed"})
	})

	r.Get("/", handleRoot)
	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", readiness(cfg.Readiness))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(cfg.RateLimiter.Handler)
		}
		if cfg.RequestTimeout > 0 {
			api.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		}
		api.Get("/", handleRoot)
		for _, m := range modules {
			m.Register(api)
		}
	})
	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}
