// internal/importer/stream.go
package importer

import (
	"encoding/json"
	"io"
	"sync"

	"candidate-intake/internal/models"
)

// Sink receives the import progress stream. Emit must not return until the
// message has been handed to the consumer (flushed), so a slow consumer
// applies backpressure instead of forcing unbounded buffering. A Sink error
// means the consumer is gone and the batch must stop.
type Sink interface {
	Emit(msg models.StreamMessage) error
}

// Flusher is what NDJSONSink needs beyond io.Writer; http.ResponseWriter
// satisfies it via http.Flusher.
type Flusher interface {
	Flush()
}

// NDJSONSink writes one JSON object per line and flushes after every
// message.
type NDJSONSink struct {
	mu      sync.Mutex
	w       io.Writer
	flusher Flusher
}

// NewNDJSONSink builds a sink over w. flusher may be nil when w does not
// buffer.
func NewNDJSONSink(w io.Writer, flusher Flusher) *NDJSONSink {
	return &NDJSONSink{w: w, flusher: flusher}
}

// Emit implements Sink.
func (s *NDJSONSink) Emit(msg models.StreamMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	if _, err := s.w.Write(line); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// discardSink drops messages; used for auto-detect imports where the caller
// wants a single response document instead of a stream.
type discardSink struct{}

func (discardSink) Emit(models.StreamMessage) error { return nil }

// DiscardSink returns a Sink that ignores everything.
func DiscardSink() Sink { return discardSink{} }
