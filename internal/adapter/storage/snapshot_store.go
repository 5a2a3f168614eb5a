// internal/adapter/storage/snapshot_store.go

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"contentengine/internal/domain/trend"
)

// SnapshotStore archives aggregated snapshots to Postgres. The archive is
// an audit trail only; the serving path never reads from it.
type SnapshotStore struct {
	db *pgxpool.Pool
}

// NewSnapshotStore creates a new snapshot store
func NewSnapshotStore(db *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{
		db: db,
	}
}

// SaveSnapshot archives a snapshot
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot *trend.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, source_trends, captured_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`

	trendsJSON, err := json.Marshal(snapshot.SourceTrends)
	if err != nil {
		return fmt.Errorf("error marshaling source trends: %w", err)
	}

	_, err = s.db.Exec(ctx, query, snapshot.ID, trendsJSON, snapshot.CapturedAt)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RecentSnapshots returns the newest archived snapshots, newest first.
func (s *SnapshotStore) RecentSnapshots(ctx context.Context, limit int) ([]trend.Snapshot, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, source_trends, captured_at
		FROM snapshots
		ORDER BY captured_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var snapshots []trend.Snapshot
	for rows.Next() {
		var (
			snapshot   trend.Snapshot
			trendsJSON []byte
		)
		if err := rows.Scan(&snapshot.ID, &trendsJSON, &snapshot.CapturedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if err := json.Unmarshal(trendsJSON, &snapshot.SourceTrends); err != nil {
			return nil, fmt.Errorf("error unmarshaling source trends: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}
