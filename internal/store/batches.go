// internal/store/batches.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"candidate-intake/internal/common/logger"
	"candidate-intake/internal/models"
)

// BatchStore records one row per import run.
type BatchStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewBatchStore creates a batch store.
func NewBatchStore(db *sql.DB, log logger.Logger) *BatchStore {
	return &BatchStore{db: db, logger: log}
}

// Create inserts the batch row at import start, with zero counts.
func (s *BatchStore) Create(ctx context.Context, batch *models.ImportBatch) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_batches (
			batch_id, file_name, imported_at, created_by,
			ready_count, review_count, blocked_count
		) VALUES ($1, $2, $3, $4, 0, 0, 0)`,
		batch.BatchID, batch.FileName, batch.ImportedAt, batch.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// UpdateCounts writes the final disposition counts when the batch finishes.
func (s *BatchStore) UpdateCounts(ctx context.Context, batchID string, ready, review, blocked int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE import_batches
		SET ready_count = $1, review_count = $2, blocked_count = $3
		WHERE batch_id = $4`,
		ready, review, blocked, batchID,
	)
	if err != nil {
		return fmt.Errorf("update batch counts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all batches for one importer, newest first.
func (s *BatchStore) List(ctx context.Context, createdBy string) ([]*models.ImportBatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT batch_id, file_name, imported_at, created_by,
		       ready_count, review_count, blocked_count
		FROM import_batches
		WHERE created_by = $1
		ORDER BY imported_at DESC`, createdBy)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []*models.ImportBatch
	for rows.Next() {
		var b models.ImportBatch
		if err := rows.Scan(&b.BatchID, &b.FileName, &b.ImportedAt,
			&b.CreatedBy, &b.ReadyCount, &b.ReviewCount, &b.BlockedCount); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
