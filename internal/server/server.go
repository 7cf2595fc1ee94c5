// Package server provides the HTTP server and routing for Horizon.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/horizon/internal/config"
	"github.com/aristath/horizon/internal/database"
	"github.com/aristath/horizon/internal/events"
	ansatzhandlers "github.com/aristath/horizon/internal/modules/ansatz/handlers"
	calibrationhandlers "github.com/aristath/horizon/internal/modules/calibration/handlers"
	holographyhandlers "github.com/aristath/horizon/internal/modules/holography/handlers"
	pricinghandlers "github.com/aristath/horizon/internal/modules/pricing/handlers"
	runshandlers "github.com/aristath/horizon/internal/modules/runs/handlers"
	"github.com/aristath/horizon/internal/qasm"
)

// Config holds server configuration
type Config struct {
	Log                zerolog.Logger
	LabDB              *database.DB
	Config             *config.Config
	Bus                *events.Bus
	HolographyHandler  *holographyhandlers.Handler
	CalibrationHandler *calibrationhandlers.Handler
	AnsatzHandler      *ansatzhandlers.Handler
	PricingHandler     *pricinghandlers.Handler
	RunsHandler        *runshandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	labDB          *database.DB
	cfg            *config.Config
	bus            *events.Bus
	systemHandlers *SystemHandlers
	traceStream    *TraceStreamHandler
	handlers       Config
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		labDB:    cfg.LabDB,
		cfg:      cfg.Config,
		bus:      cfg.Bus,
		handlers: cfg,
	}

	s.systemHandlers = NewSystemHandlers(cfg.Log, cfg.LabDB)
	s.traceStream = NewTraceStreamHandler(cfg.Bus, cfg.Log)

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/system/status", s.systemHandlers.HandleSystemStatus)
		r.Get("/system/database/stats", s.systemHandlers.HandleDatabaseStats)

		// Diagnostic trace stream (websocket). Must not go through the
		// timeout middleware's deadline semantics for long-lived
		// connections; chi's Timeout only cancels the request context,
		// which the stream handler honors.
		r.Get("/holography/trace", s.traceStream.ServeHTTP)

		s.handlers.HolographyHandler.RegisterRoutes(r)
		s.handlers.CalibrationHandler.RegisterRoutes(r)
		s.handlers.AnsatzHandler.RegisterRoutes(r)
		s.handlers.PricingHandler.RegisterRoutes(r)
		s.handlers.RunsHandler.RegisterRoutes(r)

		r.Post("/circuits/validate", s.handleValidateCircuit)
	})
}

// ValidateRequest represents a request to validate a circuit program
type ValidateRequest struct {
	Source string `json:"source"`
}

// handleValidateCircuit handles POST /api/circuits/validate
func (s *Server) handleValidateCircuit(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := qasm.Validate(req.Source)
	if err != nil {
		if errors.Is(err, qasm.ErrInvalid) {
			s.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"data": map[string]interface{}{
					"valid": false,
					"error": err.Error(),
				},
				"metadata": map[string]interface{}{
					"timestamp": time.Now().Format(time.RFC3339),
				},
			})
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"valid":  true,
			"report": report,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
