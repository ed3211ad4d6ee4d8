// internal/store/candidates.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"candidate-intake/internal/common/logger"
	"candidate-intake/internal/models"
)

// CandidateStore persists accepted candidates in Postgres, keyed by email.
type CandidateStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewCandidateStore creates a candidate store.
func NewCandidateStore(db *sql.DB, log logger.Logger) *CandidateStore {
	return &CandidateStore{db: db, logger: log}
}

const upsertCandidateSQL = `
INSERT INTO candidates (
	id, name, email, phone, position, location, experience,
	current_compensation, expected_compensation, notice_period,
	status, source_of_cv, company, client, spoc, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
)
ON CONFLICT (email) DO UPDATE SET
	name = EXCLUDED.name,
	phone = EXCLUDED.phone,
	position = EXCLUDED.position,
	location = EXCLUDED.location,
	experience = EXCLUDED.experience,
	current_compensation = EXCLUDED.current_compensation,
	expected_compensation = EXCLUDED.expected_compensation,
	notice_period = EXCLUDED.notice_period,
	status = EXCLUDED.status,
	source_of_cv = EXCLUDED.source_of_cv,
	company = EXCLUDED.company,
	client = EXCLUDED.client,
	spoc = EXCLUDED.spoc,
	updated_at = EXCLUDED.updated_at
RETURNING (xmax = 0)`

// UpsertByEmail inserts a candidate, or refreshes the existing row when the
// email is already present. Returns true when a new row was created.
func (s *CandidateStore) UpsertByEmail(ctx context.Context, cand *models.AcceptedCandidate) (bool, error) {
	var created bool
	err := s.db.QueryRowContext(ctx, upsertCandidateSQL,
		cand.ID, cand.Name, cand.Email, cand.Phone, cand.Position,
		cand.Location, cand.Experience, cand.CurrentCompensation,
		cand.ExpectedCompensation, cand.NoticePeriod, cand.Status,
		cand.SourceOfCV, cand.Company, cand.Client, cand.SPOC,
		cand.CreatedAt, cand.UpdatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert candidate: %w", err)
	}
	return created, nil
}

// EmailExists reports whether a candidate with this email is already stored.
func (s *CandidateStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email lookup: %w", err)
	}
	return exists, nil
}

// GetByEmail fetches one candidate, or sql.ErrNoRows.
func (s *CandidateStore) GetByEmail(ctx context.Context, email string) (*models.AcceptedCandidate, error) {
	var c models.AcceptedCandidate
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, position, location, experience,
		       current_compensation, expected_compensation, notice_period,
		       status, source_of_cv, company, client, spoc, created_at, updated_at
		FROM candidates WHERE email = $1`, email,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Position, &c.Location,
		&c.Experience, &c.CurrentCompensation, &c.ExpectedCompensation,
		&c.NoticePeriod, &c.Status, &c.SourceOfCV, &c.Company, &c.Client,
		&c.SPOC, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
