// Package handlers provides HTTP handlers for the holographic code simulator.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aristath/horizon/internal/modules/holography"
	"github.com/rs/zerolog"
)

// Handler handles holography HTTP requests
type Handler struct {
	service *holography.Service
	log     zerolog.Logger
}

// NewHandler creates a new holography handler
func NewHandler(service *holography.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "holography").Logger(),
	}
}

// EncodeRequest represents a request to encode a logical bit
type EncodeRequest struct {
	Bit int `json:"bit"`
}

// RecoverRequest represents a request to test an erasure pattern.
// Pattern entries are bits, with null marking an erased site.
type RecoverRequest struct {
	Pattern []*int `json:"pattern"`
}

// RebuildRequest represents a request to rebuild the network
type RebuildRequest struct {
	Layers int   `json:"layers"`
	Seed   int64 `json:"seed"`
}

// HandleNetworkInfo handles GET /api/holography/network
func (h *Handler) HandleNetworkInfo(w http.ResponseWriter, r *http.Request) {
	info := h.service.Info()

	response := map[string]interface{}{
		"data": info,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleEncode handles POST /api/holography/encode
func (h *Handler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, entropy, err := h.service.Encode(req.Bit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"bit":            req.Bit,
			"boundary_state": state,
			"entropy":        entropy,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleRecover handles POST /api/holography/recover
func (h *Handler) HandleRecover(w http.ResponseWriter, r *http.Request) {
	var req RecoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	recoverable, erased, err := h.service.Recover(holography.ErasurePattern(req.Pattern))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"recoverable":    recoverable,
			"erased_indices": erased,
			"erased_count":   len(erased),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleRebuild handles POST /api/holography/rebuild
func (h *Handler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	var req RebuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Rebuild(req.Layers, req.Seed); err != nil {
		h.writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": h.service.Info(),
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeError maps domain errors to HTTP status codes. Config and shape
// violations are client errors; anything else is internal.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, holography.ErrConfig) || errors.Is(err, holography.ErrShape) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Error().Err(err).Msg("Holography operation failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
