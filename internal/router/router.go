package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/pictonet/pictonet/internal/middleware"
	"github.com/pictonet/pictonet/internal/middleware/metrics"
	"github.com/pictonet/pictonet/internal/setup"
	"github.com/pictonet/pictonet/internal/utils"
)

// New wires all routes. Authorization itself lives in the access resolver;
// the router only authenticates tokens and shapes traffic.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(deps.Config.Public.HTTPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Handle("/metrics", promhttp.Handler())

	h := deps.Handler

	// 50 rps per client ip with small bursts; buckets idle past an hour are
	// swept.
	imageLimiter := mw.NewRateLimiter(50, 100, 1*time.Hour)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)

		r.Route("/apps/{app}", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth())
			r.Get("/", h.GetApp)
			r.With(mw.RateLimit(imageLimiter, utils.GetIP)).Get("/image/{mediaId}", h.Image)
		})
	})

	return r
}
