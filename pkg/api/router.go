package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	return applyRoutes(r, &handler{repo: repo})
}

func applyRoutes(r chi.Router, h *handler) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/", getIndex)
		r.Route("/api", func(r chi.Router) {
			r.Get("/get-data", h.getData)
			r.Post("/save-data", h.saveData)
		})
	})

	return r
}
