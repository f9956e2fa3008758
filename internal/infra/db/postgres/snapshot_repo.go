package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SnapshotRepository stores the history snapshot as a single keyed row.
type SnapshotRepository struct {
	db  *sql.DB
	key string
}

func NewSnapshotRepository(db *sql.DB, storageKey string) *SnapshotRepository {
	if storageKey == "" {
		storageKey = "analysis_history"
	}
	return &SnapshotRepository{db: db, key: storageKey}
}

// EnsureSchema creates the snapshot table if it is missing.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS history_snapshots (
  storage_key TEXT        NOT NULL PRIMARY KEY,
  payload     BYTEA       NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL
);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Load returns nil when no snapshot row exists yet.
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	const q = `SELECT payload FROM history_snapshots WHERE storage_key=$1 LIMIT 1;`
	var payload []byte
	err := r.db.QueryRowContext(ctx, q, r.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %q: %w", r.key, err)
	}
	return payload, nil
}

// Save insert/update the snapshot row
func (r *SnapshotRepository) Save(ctx context.Context, data []byte) error {
	const q = `
INSERT INTO history_snapshots (storage_key, payload, updated_at)
VALUES ($1,$2,$3)
ON CONFLICT (storage_key) DO UPDATE SET
 payload = EXCLUDED.payload,
 updated_at = EXCLUDED.updated_at;`
	if _, err := r.db.ExecContext(ctx, q, r.key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving snapshot %q: %w", r.key, err)
	}
	return nil
}
