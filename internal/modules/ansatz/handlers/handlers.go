// Package handlers provides HTTP handlers for QAOA ansatz generation.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/horizon/internal/modules/ansatz"
	"github.com/rs/zerolog"
)

// Handler handles ansatz HTTP requests
type Handler struct {
	service *ansatz.Service
	log     zerolog.Logger
}

// NewHandler creates a new ansatz handler
func NewHandler(service *ansatz.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "ansatz").Logger(),
	}
}

// GenerateRequest represents a request to generate a QAOA ansatz
type GenerateRequest struct {
	Steps int   `json:"steps"`
	UseDD *bool `json:"use_dd,omitempty"`
}

// HandleGenerate handles POST /api/circuits/ansatz
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Dynamical decoupling defaults on; it only helps reliability.
	useDD := true
	if req.UseDD != nil {
		useDD = *req.UseDD
	}

	program, err := h.service.Generate(req.Steps, useDD)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"steps":                req.Steps,
			"dynamical_decoupling": useDD,
			"qasm":                 program,
		},
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
