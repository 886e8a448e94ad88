package elaboration

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers elaboration routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/seeds/{id}/elaboration", func(r chi.Router) {
		r.Post("/", h.StartElaboration)
		r.Get("/", h.GetElaboration)
		r.Post("/answer", h.ProcessAnswer)
		r.Put("/messages/{index}", h.EditMessage)
	})
}
