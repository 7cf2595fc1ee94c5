package calibration

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Repository persists calibration snapshots in the lab database. The qubit
// array is stored as a msgpack blob; scalar columns stay queryable.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a calibration repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "calibration").Logger(),
	}
}

// Save stores a snapshot and returns its assigned id.
func (r *Repository) Save(snapshot *Snapshot) (string, error) {
	blob, err := msgpack.Marshal(snapshot.Qubits)
	if err != nil {
		return "", fmt.Errorf("failed to encode qubit blob: %w", err)
	}

	id := uuid.New().String()
	_, err = r.db.Exec(`
		INSERT INTO calibration_snapshots
			(uuid, backend, mode, eplg_input, model, qubit_count, qubits, general_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, snapshot.Backend, snapshot.Mode, snapshot.Parameters.EPLGInput,
		snapshot.Parameters.Model, len(snapshot.Qubits), blob,
		snapshot.GeneralStatus, snapshot.LastUpdate.Unix())
	if err != nil {
		return "", fmt.Errorf("failed to save calibration snapshot: %w", err)
	}

	r.log.Debug().Str("uuid", id).Str("backend", snapshot.Backend).Msg("Calibration snapshot stored")
	return id, nil
}

// Latest returns the most recent snapshot for a backend, or nil if none
// exists (not an error).
func (r *Repository) Latest(backend string) (*Snapshot, error) {
	row := r.db.QueryRow(`
		SELECT uuid, backend, mode, eplg_input, model, qubits, general_status, created_at
		FROM calibration_snapshots
		WHERE backend = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, backend)

	snapshot, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest calibration snapshot: %w", err)
	}
	return snapshot, nil
}

// List returns the most recent snapshots across all backends, newest first.
func (r *Repository) List(limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT uuid, backend, mode, eplg_input, model, qubits, general_status, created_at
		FROM calibration_snapshots
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calibration snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calibration snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var (
		snapshot  Snapshot
		blob      []byte
		createdAt int64
	)
	err := row.Scan(&snapshot.ID, &snapshot.Backend, &snapshot.Mode,
		&snapshot.Parameters.EPLGInput, &snapshot.Parameters.Model,
		&blob, &snapshot.GeneralStatus, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := msgpack.Unmarshal(blob, &snapshot.Qubits); err != nil {
		return nil, fmt.Errorf("failed to decode qubit blob: %w", err)
	}
	snapshot.LastUpdate = time.Unix(createdAt, 0).UTC()
	return &snapshot, nil
}
