package scheduler

import (
	"github.com/aristath/horizon/internal/events"
	"github.com/aristath/horizon/internal/modules/calibration"
	"github.com/rs/zerolog"
)

// CalibrationRefreshJob regenerates the digital-twin calibration snapshot on
// a schedule so the stored device state tracks the modeled drift.
type CalibrationRefreshJob struct {
	service    *calibration.Service
	repository *calibration.Repository
	bus        *events.Bus
	backend    string
	eplg       float64
	qubits     int
	log        zerolog.Logger
}

// NewCalibrationRefreshJob creates the refresh job with the configured
// backend parameters.
func NewCalibrationRefreshJob(
	service *calibration.Service,
	repository *calibration.Repository,
	bus *events.Bus,
	backend string,
	eplg float64,
	qubits int,
	log zerolog.Logger,
) *CalibrationRefreshJob {
	return &CalibrationRefreshJob{
		service:    service,
		repository: repository,
		bus:        bus,
		backend:    backend,
		eplg:       eplg,
		qubits:     qubits,
		log:        log.With().Str("job", "calibration_refresh").Logger(),
	}
}

// Name implements Job.
func (j *CalibrationRefreshJob) Name() string {
	return "calibration_refresh"
}

// Run implements Job.
func (j *CalibrationRefreshJob) Run() error {
	snapshot, err := j.service.Scan(j.backend, j.eplg, j.qubits)
	if err != nil {
		return err
	}

	id, err := j.repository.Save(snapshot)
	if err != nil {
		return err
	}

	if j.bus != nil {
		j.bus.Publish(events.CalibrationUpdated, map[string]interface{}{
			"backend": snapshot.Backend,
			"qubits":  len(snapshot.Qubits),
		})
	}

	j.log.Info().Str("uuid", id).Str("backend", j.backend).Msg("Calibration snapshot refreshed")
	return nil
}
