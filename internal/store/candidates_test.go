// internal/store/candidates_test.go
package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-intake/internal/common/logger"
	"candidate-intake/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func testCandidate() *models.AcceptedCandidate {
	return &models.AcceptedCandidate{
		ID:                   "11111111-1111-1111-1111-111111111111",
		Name:                 "John Doe",
		Email:                "john@x.com",
		Phone:                "9876543210",
		Position:             "Software Engineer",
		Location:             "Bangalore",
		Experience:           "5",
		CurrentCompensation:  "6",
		ExpectedCompensation: "9",
		NoticePeriod:         "30",
		Status:               "screening",
		SourceOfCV:           "naukri",
		CreatedAt:            "2026-08-31T10:00:00Z",
		UpdatedAt:            "2026-08-31T10:00:00Z",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestCandidateStore_UpsertByEmail_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	s := NewCandidateStore(db, newTestLogger(t))

	mock.ExpectQuery("INSERT INTO candidates").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(true))

	created, err := s.UpsertByEmail(context.Background(), testCandidate())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateStore_UpsertByEmail_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	s := NewCandidateStore(db, newTestLogger(t))

	mock.ExpectQuery("INSERT INTO candidates").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(false))

	created, err := s.UpsertByEmail(context.Background(), testCandidate())
	require.NoError(t, err)
	assert.False(t, created, "conflicting email should update, not create")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateStore_UpsertByEmail_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	s := NewCandidateStore(db, newTestLogger(t))

	mock.ExpectQuery("INSERT INTO candidates").
		WillReturnError(sql.ErrConnDone)

	_, err := s.UpsertByEmail(context.Background(), testCandidate())
	assert.Error(t, err)
}

func TestCandidateStore_EmailExists(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	s := NewCandidateStore(db, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.EmailExists(context.Background(), "john@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCandidateStore_GetByEmail_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	s := NewCandidateStore(db, newTestLogger(t))

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
