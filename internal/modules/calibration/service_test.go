package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/horizon/pkg/logger"
)

func TestScanValidation(t *testing.T) {
	svc := NewService(1, logger.Nop())

	_, err := svc.Scan("", 0.01, 5)
	assert.Error(t, err)

	_, err = svc.Scan("ibm_heron", 0, 5)
	assert.Error(t, err)

	_, err = svc.Scan("ibm_heron", -0.5, 5)
	assert.Error(t, err)

	_, err = svc.Scan("ibm_heron", 0.01, 0)
	assert.Error(t, err)
}

func TestScanSnapshotShape(t *testing.T) {
	svc := NewService(1, logger.Nop())

	snapshot, err := svc.Scan("ibm_heron", 0.0037, 5)
	require.NoError(t, err)

	assert.Equal(t, "ibm_heron", snapshot.Backend)
	assert.Equal(t, "digital_twin_physics_simulation", snapshot.Mode)
	assert.Equal(t, "transmon_monte_carlo", snapshot.Parameters.Model)
	assert.Equal(t, 0.0037, snapshot.Parameters.EPLGInput)
	assert.Equal(t, "active", snapshot.GeneralStatus)
	assert.False(t, snapshot.LastUpdate.IsZero())
	require.Len(t, snapshot.Qubits, 5)

	for i, q := range snapshot.Qubits {
		assert.Equal(t, i, q.ID)
		assert.True(t, q.Operational)
		assert.Greater(t, q.T1, 0.0, "qubit %d", i)
		assert.LessOrEqual(t, q.T1, 500.0, "qubit %d", i)
		assert.Greater(t, q.T2, 0.0, "qubit %d", i)
		assert.LessOrEqual(t, q.T2, 500.0, "qubit %d", i)
		assert.Greater(t, q.ReadoutError, 0.0, "qubit %d", i)
		assert.LessOrEqual(t, q.ReadoutError, 0.2, "qubit %d", i)
	}
}

func TestScanFrequencyLadder(t *testing.T) {
	svc := NewService(3, logger.Nop())

	snapshot, err := svc.Scan("ibm_heron", 0.0037, 8)
	require.NoError(t, err)

	// Frequencies climb 50MHz per qubit from 5GHz with 10MHz jitter.
	for i, q := range snapshot.Qubits {
		center := 5.0 + 0.05*float64(i)
		assert.InDelta(t, center, q.Frequency, 0.011, "qubit %d", i)
	}
}

func TestScanDeterministicForSeed(t *testing.T) {
	a, err := NewService(7, logger.Nop()).Scan("ibm_heron", 0.005, 4)
	require.NoError(t, err)
	b, err := NewService(7, logger.Nop()).Scan("ibm_heron", 0.005, 4)
	require.NoError(t, err)

	require.Len(t, b.Qubits, len(a.Qubits))
	for i := range a.Qubits {
		assert.Equal(t, a.Qubits[i].T1, b.Qubits[i].T1)
		assert.Equal(t, a.Qubits[i].T2, b.Qubits[i].T2)
		assert.Equal(t, a.Qubits[i].ReadoutError, b.Qubits[i].ReadoutError)
		assert.Equal(t, a.Qubits[i].Frequency, b.Qubits[i].Frequency)
	}
}

func TestScanHighErrorRateIsCapped(t *testing.T) {
	svc := NewService(1, logger.Nop())

	// A terrible device: derived readout error would exceed the cap.
	snapshot, err := svc.Scan("noisy_backend", 0.5, 3)
	require.NoError(t, err)

	for i, q := range snapshot.Qubits {
		assert.LessOrEqual(t, q.ReadoutError, 0.2, "qubit %d", i)
		assert.LessOrEqual(t, q.T1, 500.0, "qubit %d", i)
	}
}
