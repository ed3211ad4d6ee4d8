// internal/store/pending.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"candidate-intake/internal/common/logger"
	"candidate-intake/internal/models"
)

// PendingStore holds review and blocked rows awaiting triage. The variable
// parts of a pending record (fields, original data, findings) go in JSONB
// columns so the schema survives taxonomy changes.
type PendingStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewPendingStore creates a pending store.
func NewPendingStore(db *sql.DB, log logger.Logger) *PendingStore {
	return &PendingStore{db: db, logger: log}
}

type pendingPayload struct {
	Fields    map[models.Field]string `json:"fields"`
	Original  map[string]string       `json:"originalData"`
	Errors    []models.FieldError     `json:"validationErrors"`
	Warnings  []models.FieldWarning   `json:"validationWarnings"`
	AutoFixes []string                `json:"autoFixChanges"`
	Swaps     []string                `json:"swaps"`
}

// Insert stores one pending record.
func (s *PendingStore) Insert(ctx context.Context, rec *models.PendingRecord) error {
	payload, err := json.Marshal(pendingPayload{
		Fields:    rec.Fields,
		Original:  rec.Original,
		Errors:    rec.Errors,
		Warnings:  rec.Warnings,
		AutoFixes: rec.AutoFixes,
		Swaps:     rec.Swaps,
	})
	if err != nil {
		return fmt.Errorf("marshal pending payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pending_records (
			id, batch_id, file_name, imported_at, category, row_index,
			confidence, owner, payload, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.BatchID, rec.FileName, rec.ImportedAt, rec.Category,
		rec.RowIndex, rec.Confidence, rec.Owner, payload,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pending record: %w", err)
	}
	return nil
}

// Get fetches one pending record scoped to its owner, or sql.ErrNoRows.
func (s *PendingStore) Get(ctx context.Context, id, owner string) (*models.PendingRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, batch_id, file_name, imported_at, category, row_index,
		       confidence, owner, payload, created_at, updated_at
		FROM pending_records WHERE id = $1 AND owner = $2`, id, owner)
	return scanPending(row)
}

// List returns the owner's pending records for one category, newest batch
// first then by row order.
func (s *PendingStore) List(ctx context.Context, owner string, category models.PendingCategory) ([]*models.PendingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, file_name, imported_at, category, row_index,
		       confidence, owner, payload, created_at, updated_at
		FROM pending_records
		WHERE owner = $1 AND category = $2
		ORDER BY imported_at DESC, row_index ASC`, owner, category)
	if err != nil {
		return nil, fmt.Errorf("list pending records: %w", err)
	}
	defer rows.Close()

	var out []*models.PendingRecord
	for rows.Next() {
		rec, err := scanPending(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update rewrites a pending record after a manual edit. Category moves with
// the new validation verdict; row identity and batch provenance never change.
func (s *PendingStore) Update(ctx context.Context, rec *models.PendingRecord) error {
	payload, err := json.Marshal(pendingPayload{
		Fields:    rec.Fields,
		Original:  rec.Original,
		Errors:    rec.Errors,
		Warnings:  rec.Warnings,
		AutoFixes: rec.AutoFixes,
		Swaps:     rec.Swaps,
	})
	if err != nil {
		return fmt.Errorf("marshal pending payload: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE pending_records
		SET category = $1, confidence = $2, payload = $3, updated_at = $4
		WHERE id = $5 AND owner = $6`,
		rec.Category, rec.Confidence, payload, rec.UpdatedAt, rec.ID, rec.Owner,
	)
	if err != nil {
		return fmt.Errorf("update pending record: %w", err)
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

// Delete removes a pending record, owner-scoped.
func (s *PendingStore) Delete(ctx context.Context, id, owner string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_records WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("delete pending record: %w", err)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPending(row rowScanner) (*models.PendingRecord, error) {
	var rec models.PendingRecord
	var payload []byte
	err := row.Scan(&rec.ID, &rec.BatchID, &rec.FileName, &rec.ImportedAt,
		&rec.Category, &rec.RowIndex, &rec.Confidence, &rec.Owner, &payload,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	var p pendingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("unmarshal pending payload: %w", err)
	}
	rec.Fields = p.Fields
	rec.Original = p.Original
	rec.Errors = p.Errors
	rec.Warnings = p.Warnings
	rec.AutoFixes = p.AutoFixes
	rec.Swaps = p.Swaps
	return &rec, nil
}
