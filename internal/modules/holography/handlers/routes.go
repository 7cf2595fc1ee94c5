package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all holography routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/holography", func(r chi.Router) {
		r.Get("/network", h.HandleNetworkInfo)
		r.Post("/encode", h.HandleEncode)
		r.Post("/recover", h.HandleRecover)
		r.Post("/rebuild", h.HandleRebuild)
	})
}
