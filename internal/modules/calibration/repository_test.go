package calibration

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/horizon/pkg/logger"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE calibration_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			backend TEXT NOT NULL,
			mode TEXT NOT NULL,
			eplg_input REAL NOT NULL,
			model TEXT NOT NULL,
			qubit_count INTEGER NOT NULL,
			qubits BLOB NOT NULL,
			general_status TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	return db
}

func testSnapshot(backend string, at time.Time) *Snapshot {
	return &Snapshot{
		Backend: backend,
		Mode:    "digital_twin_physics_simulation",
		Parameters: Parameters{
			EPLGInput: 0.0037,
			Model:     "transmon_monte_carlo",
		},
		LastUpdate: at,
		Qubits: []QubitCalibration{
			{ID: 0, T1: 135.1, T2: 120.4, ReadoutError: 0.0037, Frequency: 5.01, Operational: true},
			{ID: 1, T1: 140.9, T2: 131.7, ReadoutError: 0.0041, Frequency: 5.06, Operational: true},
		},
		GeneralStatus: "active",
	}
}

func TestSaveAndLatest(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Nop())

	now := time.Now().UTC().Truncate(time.Second)
	id, err := repo.Save(testSnapshot("ibm_heron", now))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := repo.Latest("ibm_heron")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "ibm_heron", got.Backend)
	assert.Equal(t, 0.0037, got.Parameters.EPLGInput)
	assert.Equal(t, now, got.LastUpdate)
	require.Len(t, got.Qubits, 2)
	assert.Equal(t, 135.1, got.Qubits[0].T1)
	assert.Equal(t, 0.0041, got.Qubits[1].ReadoutError)
}

func TestLatestReturnsNewest(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Nop())

	base := time.Now().UTC().Truncate(time.Second)
	_, err := repo.Save(testSnapshot("ibm_heron", base.Add(-2*time.Hour)))
	require.NoError(t, err)
	newest, err := repo.Save(testSnapshot("ibm_heron", base))
	require.NoError(t, err)
	_, err = repo.Save(testSnapshot("ibm_heron", base.Add(-time.Hour)))
	require.NoError(t, err)

	got, err := repo.Latest("ibm_heron")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest, got.ID)
}

func TestLatestNoSnapshot(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Nop())

	got, err := repo.Latest("missing_backend")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLatestScopedToBackend(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Nop())

	base := time.Now().UTC().Truncate(time.Second)
	_, err := repo.Save(testSnapshot("backend_a", base))
	require.NoError(t, err)
	_, err = repo.Save(testSnapshot("backend_b", base.Add(time.Hour)))
	require.NoError(t, err)

	got, err := repo.Latest("backend_a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "backend_a", got.Backend)
}

func TestList(t *testing.T) {
	repo := NewRepository(setupTestDB(t), logger.Nop())

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		_, err := repo.Save(testSnapshot("ibm_heron", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	snapshots, err := repo.List(3)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)

	// Newest first.
	assert.Equal(t, base.Add(4*time.Minute), snapshots[0].LastUpdate)
	assert.Equal(t, base.Add(3*time.Minute), snapshots[1].LastUpdate)

	all, err := repo.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
