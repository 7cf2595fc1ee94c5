package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all ansatz routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/circuits/ansatz", h.HandleGenerate)
}
