// internal/importer/stream_test.go
package importer

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-intake/internal/models"
)

type countingFlusher struct {
	flushes int
}

func (f *countingFlusher) Flush() { f.flushes++ }

func TestNDJSONSink(t *testing.T) {
	var buf bytes.Buffer
	flusher := &countingFlusher{}
	sink := NewNDJSONSink(&buf, flusher)

	require.NoError(t, sink.Emit(models.StreamMessage{Type: models.StreamProgress, Processed: 10, Total: 20}))
	require.NoError(t, sink.Emit(models.StreamMessage{Type: models.StreamComplete, TotalProcessed: 20}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 2, flusher.flushes)

	var first models.StreamMessage
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, models.StreamProgress, first.Type)
	assert.Equal(t, 10, first.Processed)

	var second models.StreamMessage
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, models.StreamComplete, second.Type)
	assert.Equal(t, 20, second.TotalProcessed)
}

// A complete line must carry all three summary counts even when they are
// zero, and a progress line must carry nothing but processed/total.
func TestNDJSONSink_LineShapes(t *testing.T) {
	var buf bytes.Buffer
	sink := NewNDJSONSink(&buf, nil)

	require.NoError(t, sink.Emit(models.StreamMessage{Type: models.StreamProgress, Processed: 5, Total: 10}))
	require.NoError(t, sink.Emit(models.StreamMessage{Type: models.StreamComplete, TotalProcessed: 10}))
	require.NoError(t, sink.Emit(models.StreamMessage{Type: models.StreamError, Message: "boom"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var progress map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &progress))
	assert.Equal(t, []string{"processed", "total", "type"}, sortedKeys(progress))

	var complete map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &complete))
	assert.Equal(t, []string{"duplicatesInDB", "duplicatesInFile", "totalProcessed", "type"}, sortedKeys(complete))
	assert.Equal(t, float64(10), complete["totalProcessed"])
	assert.Equal(t, float64(0), complete["duplicatesInFile"])
	assert.Equal(t, float64(0), complete["duplicatesInDB"])

	var errLine map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &errLine))
	assert.Equal(t, []string{"message", "type"}, sortedKeys(errLine))
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestDiscardSink(t *testing.T) {
	sink := DiscardSink()
	assert.NoError(t, sink.Emit(models.StreamMessage{Type: models.StreamProgress}))
}
