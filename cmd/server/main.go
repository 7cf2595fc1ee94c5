// Horizon is a holographic error-correction lab service. It serves a toy
// bulk/boundary tensor network, a device calibration digital twin, and
// circuit generators over HTTP, persisting experiment history in SQLite.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aristath/horizon/internal/config"
	"github.com/aristath/horizon/internal/database"
	"github.com/aristath/horizon/internal/events"
	"github.com/aristath/horizon/internal/modules/ansatz"
	ansatzhandlers "github.com/aristath/horizon/internal/modules/ansatz/handlers"
	"github.com/aristath/horizon/internal/modules/calibration"
	calibrationhandlers "github.com/aristath/horizon/internal/modules/calibration/handlers"
	"github.com/aristath/horizon/internal/modules/holography"
	holographyhandlers "github.com/aristath/horizon/internal/modules/holography/handlers"
	"github.com/aristath/horizon/internal/modules/pricing"
	pricinghandlers "github.com/aristath/horizon/internal/modules/pricing/handlers"
	"github.com/aristath/horizon/internal/modules/runs"
	runshandlers "github.com/aristath/horizon/internal/modules/runs/handlers"
	"github.com/aristath/horizon/internal/scheduler"
	"github.com/aristath/horizon/internal/server"
	"github.com/aristath/horizon/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet, write directly to stderr.
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("port", cfg.Port).
		Str("data_dir", cfg.DataDir).
		Int("holography_layers", cfg.HolographyLayers).
		Msg("Starting horizon")

	labDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "lab.db"),
		Profile: database.ProfileStandard,
		Name:    "lab",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open lab database")
	}
	defer labDB.Close()

	if err := labDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate lab database")
	}

	bus := events.NewBus(log)

	runsRepo := runs.NewRepository(labDB.Conn(), log)

	holographyService, err := holography.NewService(cfg.HolographyLayers, cfg.HolographySeed, bus, runsRepo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build holographic network")
	}

	calibrationService := calibration.NewService(cfg.CalibrationSeed, log)
	calibrationRepo := calibration.NewRepository(labDB.Conn(), log)
	ansatzService := ansatz.NewService(log)
	pricingService := pricing.NewService(log)

	sched := scheduler.New(log)
	if cfg.CalibrationSchedule != "" {
		job := scheduler.NewCalibrationRefreshJob(
			calibrationService,
			calibrationRepo,
			bus,
			cfg.CalibrationBackend,
			cfg.CalibrationEPLG,
			cfg.CalibrationQubits,
			log,
		)
		if err := sched.AddJob(cfg.CalibrationSchedule, job); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.CalibrationSchedule).Msg("Failed to register calibration refresh job")
		}

		// Seed a snapshot at startup so /api/calibration/latest has data
		// before the first scheduled run.
		if err := sched.RunNow(job); err != nil {
			log.Warn().Err(err).Msg("Initial calibration scan failed")
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:                log,
		LabDB:              labDB,
		Config:             cfg,
		Bus:                bus,
		HolographyHandler:  holographyhandlers.NewHandler(holographyService, log),
		CalibrationHandler: calibrationhandlers.NewHandler(calibrationService, calibrationRepo, bus, cfg.CalibrationBackend, log),
		AnsatzHandler:      ansatzhandlers.NewHandler(ansatzService, log),
		PricingHandler:     pricinghandlers.NewHandler(pricingService, log),
		RunsHandler:        runshandlers.NewHandler(runsRepo, log),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Horizon stopped")
}
