// internal/store/progress.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"candidate-intake/internal/common/logger"
)

const progressKeyPrefix = "intake:progress:"

// BatchProgress is the live state of one running import.
type BatchProgress struct {
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	UpdatedAt string `json:"updatedAt"`
}

// ProgressTracker mirrors import progress into Redis so a client whose
// stream dropped can still poll where its batch got to. Best-effort: a
// write failure is logged and the import carries on.
type ProgressTracker struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewProgressTracker creates a progress tracker.
func NewProgressTracker(rdb *redis.Client, ttl time.Duration, log logger.Logger) *ProgressTracker {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ProgressTracker{rdb: rdb, ttl: ttl, logger: log}
}

// Update records the current position of a batch.
func (t *ProgressTracker) Update(ctx context.Context, batchID string, processed, total int) {
	if t.rdb == nil {
		return
	}
	payload, err := json.Marshal(BatchProgress{
		Processed: processed,
		Total:     total,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := t.rdb.Set(ctx, progressKeyPrefix+batchID, payload, t.ttl).Err(); err != nil {
		t.logger.Warn("progress write failed", map[string]interface{}{
			"error":   err.Error(),
			"batchId": batchID,
		})
	}
}

// Get returns the stored progress for a batch, or nil when none exists.
func (t *ProgressTracker) Get(ctx context.Context, batchID string) (*BatchProgress, error) {
	if t.rdb == nil {
		return nil, nil
	}
	raw, err := t.rdb.Get(ctx, progressKeyPrefix+batchID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p BatchProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
