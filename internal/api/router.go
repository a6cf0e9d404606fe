package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/inkwell/internal/api/handlers"
	"github.com/baharkarakas/inkwell/internal/config"
	"github.com/baharkarakas/inkwell/internal/metrics"
	"github.com/baharkarakas/inkwell/internal/middleware"
)

type RouterDeps struct {
	Cfg   config.Config
	Auth  handlers.AuthActions
	Posts handlers.PostActions
	Authn middleware.Authenticator
	Log   *slog.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(d.Log), middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	ah := handlers.NewAuthHandler(d.Auth)
	ph := handlers.NewPostHandler(d.Posts)
	authn := middleware.NewAuthMiddleware(d.Authn)

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/register", ah.Register)
		r.With(authn.Auth).Get("/auth/me", ah.Me)

		// ---------- posts ----------
		r.Get("/posts", ph.List)
		r.Get("/posts/categories", ph.Categories)
		r.Get("/posts/slug/{slug}", ph.GetBySlug)
		r.Get("/posts/{id}", ph.Get)

		r.Group(func(r chi.Router) {
			r.Use(authn.Auth)
			r.Post("/posts", ph.Create)
			r.Patch("/posts/{id}", ph.Update)
			r.Delete("/posts/{id}", ph.Delete)
			r.Get("/dashboard/posts", ph.Dashboard)
		})
	})

	return r
}
