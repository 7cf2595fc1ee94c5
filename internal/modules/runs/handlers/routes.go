package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all runs routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/runs", h.HandleList)
}
