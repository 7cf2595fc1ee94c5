// Package handlers provides HTTP handlers for calibration snapshots.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/horizon/internal/events"
	"github.com/aristath/horizon/internal/modules/calibration"
	"github.com/rs/zerolog"
)

// Handler handles calibration HTTP requests
type Handler struct {
	service    *calibration.Service
	repository *calibration.Repository
	bus        *events.Bus
	backend    string
	log        zerolog.Logger
}

// NewHandler creates a new calibration handler. backend is the default
// backend name used when a request does not name one.
func NewHandler(
	service *calibration.Service,
	repository *calibration.Repository,
	bus *events.Bus,
	backend string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service:    service,
		repository: repository,
		bus:        bus,
		backend:    backend,
		log:        log.With().Str("handler", "calibration").Logger(),
	}
}

// ScanRequest represents a request to generate a calibration snapshot
type ScanRequest struct {
	Backend string  `json:"backend"`
	EPLG    float64 `json:"eplg"`
	Qubits  int     `json:"qubits"`
}

// HandleScan handles POST /api/calibration/scan
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Backend == "" {
		req.Backend = h.backend
	}
	if req.EPLG == 0 {
		req.EPLG = 0.01
	}
	if req.Qubits == 0 {
		req.Qubits = 5
	}

	snapshot, err := h.service.Scan(req.Backend, req.EPLG, req.Qubits)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.repository.Save(snapshot)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to persist calibration snapshot")
		http.Error(w, "Failed to persist snapshot", http.StatusInternalServerError)
		return
	}
	snapshot.ID = id

	if h.bus != nil {
		h.bus.Publish(events.CalibrationUpdated, map[string]interface{}{
			"backend": snapshot.Backend,
			"qubits":  len(snapshot.Qubits),
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": snapshot,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleLatest handles GET /api/calibration/latest
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	backend := r.URL.Query().Get("backend")
	if backend == "" {
		backend = h.backend
	}

	snapshot, err := h.repository.Latest(backend)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load calibration snapshot")
		http.Error(w, "Failed to load snapshot", http.StatusInternalServerError)
		return
	}
	if snapshot == nil {
		http.Error(w, "No calibration snapshot available", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": snapshot,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
