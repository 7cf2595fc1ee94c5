package runs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Repository persists experiment runs in the lab database. Erased indices
// are stored as a msgpack blob.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a runs repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "runs").Logger(),
	}
}

// RecordEncode stores an encode run. Implements holography.RunRecorder.
func (r *Repository) RecordEncode(layers int, bit int, entropy float64) error {
	_, err := r.db.Exec(`
		INSERT INTO experiment_runs (uuid, kind, layers, bit, entropy, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), KindEncode, layers, bit, entropy, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record encode run: %w", err)
	}
	return nil
}

// RecordRecovery stores a recovery run. Implements holography.RunRecorder.
func (r *Repository) RecordRecovery(layers int, erased []int, recoverable bool) error {
	blob, err := msgpack.Marshal(erased)
	if err != nil {
		return fmt.Errorf("failed to encode erased indices: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO experiment_runs (uuid, kind, layers, erased_indices, recoverable, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), KindRecovery, layers, blob, recoverable, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record recovery run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *Repository) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT uuid, kind, layers, bit, entropy, erased_indices, recoverable, created_at
		FROM experiment_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var result []*Run
	for rows.Next() {
		var (
			run         Run
			bit         sql.NullInt64
			entropy     sql.NullFloat64
			blob        []byte
			recoverable sql.NullBool
			createdAt   int64
		)
		if err := rows.Scan(&run.ID, &run.Kind, &run.Layers, &bit, &entropy, &blob, &recoverable, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if bit.Valid {
			v := int(bit.Int64)
			run.Bit = &v
		}
		if entropy.Valid {
			v := entropy.Float64
			run.Entropy = &v
		}
		if recoverable.Valid {
			v := recoverable.Bool
			run.Recoverable = &v
		}
		if len(blob) > 0 {
			if err := msgpack.Unmarshal(blob, &run.ErasedIndices); err != nil {
				return nil, fmt.Errorf("failed to decode erased indices: %w", err)
			}
		}
		run.CreatedAt = time.Unix(createdAt, 0).UTC()

		result = append(result, &run)
	}
	return result, rows.Err()
}
