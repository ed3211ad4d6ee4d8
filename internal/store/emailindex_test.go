// internal/store/emailindex_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestEmailIndex_Exists_CacheMissThenHit(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	rdb := setupMiniRedis(t)

	candidates := NewCandidateStore(db, newTestLogger(t))
	idx := NewEmailIndex(rdb, candidates, newTestLogger(t))

	// First lookup misses the cache and hits postgres once.
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := idx.Exists(context.Background(), "john@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	// Second lookup is served from redis; no further query expected.
	exists, err = idx.Exists(context.Background(), "john@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailIndex_Exists_NegativeCached(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	rdb := setupMiniRedis(t)

	candidates := NewCandidateStore(db, newTestLogger(t))
	idx := NewEmailIndex(rdb, candidates, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("new@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := idx.Exists(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = idx.Exists(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A negative entry cached before an upsert must not outlive it: MarkExists
// flips the cached answer without another round trip to postgres.
func TestEmailIndex_MarkExists_OverridesNegativeCache(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	rdb := setupMiniRedis(t)

	candidates := NewCandidateStore(db, newTestLogger(t))
	idx := NewEmailIndex(rdb, candidates, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("new@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := idx.Exists(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	idx.MarkExists(context.Background(), "new@x.com")

	exists, err = idx.Exists(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailIndex_Invalidate(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	rdb := setupMiniRedis(t)

	candidates := NewCandidateStore(db, newTestLogger(t))
	idx := NewEmailIndex(rdb, candidates, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := idx.Exists(context.Background(), "john@x.com")
	require.NoError(t, err)

	idx.Invalidate(context.Background(), "john@x.com")

	// After invalidation the next lookup goes back to postgres.
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := idx.Exists(context.Background(), "john@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmailIndex_NilRedisFallsThrough(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	candidates := NewCandidateStore(db, newTestLogger(t))
	idx := NewEmailIndex(nil, candidates, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("john@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := idx.Exists(context.Background(), "john@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProgressTracker_UpdateAndGet(t *testing.T) {
	rdb := setupMiniRedis(t)
	tracker := NewProgressTracker(rdb, time.Hour, newTestLogger(t))

	tracker.Update(context.Background(), "batch-1", 40, 100)

	p, err := tracker.Get(context.Background(), "batch-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 40, p.Processed)
	assert.Equal(t, 100, p.Total)

	missing, err := tracker.Get(context.Background(), "batch-2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
