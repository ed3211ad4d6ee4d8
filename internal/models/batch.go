// internal/models/batch.go
package models

import "encoding/json"

// ImportBatch is one upload operation. Counts are written once, when the
// batch finishes; everything else is immutable after creation.
type ImportBatch struct {
	BatchID      string `json:"batchId"`
	FileName     string `json:"fileName"`
	ImportedAt   string `json:"importedAt"`
	CreatedBy    string `json:"createdBy"`
	ReadyCount   int    `json:"readyCount"`
	ReviewCount  int    `json:"reviewCount"`
	BlockedCount int    `json:"blockedCount"`
}

// PendingCategory is the pending-review bucket a held record sits in.
type PendingCategory string

const (
	PendingReview  PendingCategory = "review"
	PendingBlocked PendingCategory = "blocked"
)

// PendingRecord is the persisted form of a review/blocked row. It belongs to
// exactly one owner and one category at a time, and is deleted on promotion
// or explicit discard.
type PendingRecord struct {
	ID         string            `json:"id"`
	BatchID    string            `json:"batchId"`
	FileName   string            `json:"fileName"`
	ImportedAt string            `json:"importedAt"`
	Category   PendingCategory   `json:"category"`
	RowIndex   int               `json:"rowIndex"`
	Fields     map[Field]string  `json:"fields"`
	Original   map[string]string `json:"originalData"`
	Confidence int               `json:"confidence"`
	Errors     []FieldError      `json:"validationErrors"`
	Warnings   []FieldWarning    `json:"validationWarnings"`
	AutoFixes  []string          `json:"autoFixChanges"`
	Swaps      []string          `json:"swaps"`
	Owner      string            `json:"owner"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
}

// Stream message types for the mapped-import NDJSON response.
const (
	StreamProgress = "progress"
	StreamComplete = "complete"
	StreamError    = "error"
)

// StreamMessage is one line of the import progress stream. Each type
// marshals to its own fixed shape: a progress line carries processed/total,
// a complete line always carries all three summary counts even when zero,
// an error line carries only the message.
type StreamMessage struct {
	Type             string `json:"type"`
	Processed        int    `json:"processed"`
	Total            int    `json:"total"`
	TotalProcessed   int    `json:"totalProcessed"`
	DuplicatesInFile int    `json:"duplicatesInFile"`
	DuplicatesInDB   int    `json:"duplicatesInDB"`
	Message          string `json:"message"`
}

// MarshalJSON emits only the fields that belong to the message type, so a
// complete line never drops a zero-valued count and a progress line never
// carries summary fields.
func (m StreamMessage) MarshalJSON() ([]byte, error) {
	switch m.Type {
	case StreamComplete:
		return json.Marshal(struct {
			Type             string `json:"type"`
			TotalProcessed   int    `json:"totalProcessed"`
			DuplicatesInFile int    `json:"duplicatesInFile"`
			DuplicatesInDB   int    `json:"duplicatesInDB"`
		}{m.Type, m.TotalProcessed, m.DuplicatesInFile, m.DuplicatesInDB})
	case StreamError:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}{m.Type, m.Message})
	default:
		return json.Marshal(struct {
			Type      string `json:"type"`
			Processed int    `json:"processed"`
			Total     int    `json:"total"`
		}{m.Type, m.Processed, m.Total})
	}
}
