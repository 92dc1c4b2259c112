package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nullcipherr/fuzzdx/internal/diagnose"
	"github.com/nullcipherr/fuzzdx/internal/store"
)

func NewRouter(svc *diagnose.Service, s store.Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(240))

	h := NewDiagnoseHandler(svc, s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/diagnose", h.Create)
		r.Get("/diagnose/{id}", h.Get)
		r.Get("/diagnoses", h.List)
		r.Get("/stats", h.Stats)
		r.Get("/system", h.System)
		r.Get("/methods", h.Methods)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
