package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/pkg/respond"
)

func NewRouter(h *TaskHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", h.Dashboard)
	r.Post("/reload", h.ReloadPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", h.List)
		r.Get("/tasks/{row}", h.Get)
		r.Get("/triage", h.Triage)
		r.Get("/options", h.Options)
		r.Post("/reload", h.Reload)
	})

	return r
}
