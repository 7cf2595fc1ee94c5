// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the lab database
	Port     int
	LogLevel string
	DevMode  bool

	// Holographic network defaults
	HolographyLayers int
	HolographySeed   int64

	// Calibration digital twin defaults
	CalibrationBackend  string
	CalibrationEPLG     float64
	CalibrationQubits   int
	CalibrationSeed     int64
	CalibrationSchedule string // cron expression for the refresh job; empty disables it
}

// Load reads configuration from environment variables, with a .env file as
// an optional source.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("HORIZON_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:  absDataDir,
		Port:     getEnvAsInt("PORT", 8010),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("DEV_MODE", false),

		HolographyLayers: getEnvAsInt("HOLOGRAPHY_LAYERS", 3),
		HolographySeed:   getEnvAsInt64("HOLOGRAPHY_SEED", 1),

		CalibrationBackend:  getEnv("CALIBRATION_BACKEND", "ibm_heron"),
		CalibrationEPLG:     getEnvAsFloat("CALIBRATION_EPLG", 0.0037),
		CalibrationQubits:   getEnvAsInt("CALIBRATION_QUBITS", 5),
		CalibrationSeed:     getEnvAsInt64("CALIBRATION_SEED", 1),
		CalibrationSchedule: getEnv("CALIBRATION_REFRESH_SCHEDULE", "@hourly"),
	}

	if cfg.HolographyLayers < 1 {
		return nil, fmt.Errorf("HOLOGRAPHY_LAYERS must be at least 1, got %d", cfg.HolographyLayers)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
