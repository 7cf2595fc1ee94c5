// Package handlers provides HTTP handlers for option pricing circuits.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/horizon/internal/modules/pricing"
	"github.com/rs/zerolog"
)

// Handler handles pricing HTTP requests
type Handler struct {
	service *pricing.Service
	log     zerolog.Logger
}

// NewHandler creates a new pricing handler
func NewHandler(service *pricing.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "pricing").Logger(),
	}
}

// HandleBuild handles POST /api/circuits/pricing
func (h *Handler) HandleBuild(w http.ResponseWriter, r *http.Request) {
	var req pricing.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Sensible defaults for the NISQ demo contract.
	if req.Strike == 0 {
		req.Strike = 105.0
	}
	if req.Rate == 0 {
		req.Rate = 0.05
	}
	if req.Maturity == 0 {
		req.Maturity = 0.1
	}

	circuit, err := h.service.BuildCircuit(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"data": circuit,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
