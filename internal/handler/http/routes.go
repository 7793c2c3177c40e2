package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/params", h.params)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/verify", h.verify)
	})

	// routes guarded by a bearer session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/rotate", h.rotate)

		r.Route("/api/blobs", func(r chi.Router) {
			r.Get("/", h.listBlobs)
			r.Put("/{name}", h.upsertBlob)
			r.Get("/{name}", h.getBlob)
			r.Delete("/{name}", h.deleteBlob)
		})
	})

	return router
}
