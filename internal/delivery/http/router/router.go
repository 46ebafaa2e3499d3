package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/phishblock-service/internal/delivery/http/handler"
	"github.com/user/phishblock-service/internal/delivery/http/middleware"
	"github.com/user/phishblock-service/internal/repository"
)

// New wires the HTTP routes. limiter may be nil; rate limiting then
// applies to nothing.
func New(h *handler.Handler, limiter repository.RateLimitRepository, rateLimitPerMinute int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealthCheck)
	r.Get("/features", h.HandleFeatures)
	r.Get("/stats", h.HandleStats)
	r.Post("/feedback", h.HandleFeedback)

	r.Group(func(r chi.Router) {
		if limiter != nil && rateLimitPerMinute > 0 {
			r.Use(middleware.RateLimit(limiter, rateLimitPerMinute))
		}
		r.Post("/predict", h.HandlePredict)
		r.Post("/predict/batch", h.HandlePredictBatch)
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
