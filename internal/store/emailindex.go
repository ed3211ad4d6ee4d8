// internal/store/emailindex.go
package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"candidate-intake/internal/common/logger"
)

const (
	emailKeyPrefix = "intake:email:"
	emailCacheTTL  = 10 * time.Minute
)

// EmailIndex answers email-existence lookups with a Redis cache in front of
// Postgres. Misses are cached too, so a file full of new addresses hits the
// database once per address. On Redis failure it falls straight through to
// the database.
type EmailIndex struct {
	rdb        *redis.Client
	candidates *CandidateStore
	logger     logger.Logger
}

// NewEmailIndex creates an email index. rdb may be nil to disable caching.
func NewEmailIndex(rdb *redis.Client, candidates *CandidateStore, log logger.Logger) *EmailIndex {
	return &EmailIndex{rdb: rdb, candidates: candidates, logger: log}
}

// Exists reports whether a candidate with this email is already stored.
func (x *EmailIndex) Exists(ctx context.Context, email string) (bool, error) {
	key := emailKeyPrefix + email

	if x.rdb != nil {
		cached, err := x.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			return cached == "1", nil
		case err != redis.Nil:
			x.logger.Warn("email cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	exists, err := x.candidates.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}

	if x.rdb != nil {
		val := "0"
		if exists {
			val = "1"
		}
		if err := x.rdb.Set(ctx, key, val, emailCacheTTL).Err(); err != nil {
			x.logger.Warn("email cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return exists, nil
}

// MarkExists warms the cache after a candidate write, so lookups within the
// TTL window see the new row instead of a stale negative entry. Best effort.
func (x *EmailIndex) MarkExists(ctx context.Context, email string) {
	if x.rdb == nil {
		return
	}
	if err := x.rdb.Set(ctx, emailKeyPrefix+email, "1", emailCacheTTL).Err(); err != nil {
		x.logger.Warn("email cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// Invalidate drops a cached entry after the candidate set changes.
func (x *EmailIndex) Invalidate(ctx context.Context, email string) {
	if x.rdb == nil {
		return
	}
	if err := x.rdb.Del(ctx, emailKeyPrefix+email).Err(); err != nil {
		x.logger.Warn("email cache invalidate failed", map[string]interface{}{"error": err.Error()})
	}
}
