package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all calibration routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/calibration", func(r chi.Router) {
		r.Get("/latest", h.HandleLatest)
		r.Post("/scan", h.HandleScan)
	})
}
