package seed

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers seed routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/seeds", func(r chi.Router) {
		r.Post("/", h.CreateSeed)
		r.Get("/", h.ListSeeds)
		r.Get("/{id}", h.GetSeed)
		r.Post("/{id}/save", h.SaveSeed)
		r.Post("/{id}/dismiss", h.DismissSeed)
		r.Delete("/{id}", h.DeleteSeed)
		r.Get("/{id}/export", h.ExportProposal)
	})
}
