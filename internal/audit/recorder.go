// Package audit consumes rewrite events off the bus and persists them as
// generation records. It is decoupled from the synthesis path: a recorder
// outage never blocks or fails a rewrite.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/quillworks/mimic/internal/bus"
	"github.com/quillworks/mimic/internal/store"
)

// Sink is where consumed events land.
type Sink interface {
	CreateGenerationRecord(ctx context.Context, rec store.GenerationRecord) (*store.GenerationRecord, error)
}

// Subscriber is the bus surface the recorder needs.
type Subscriber interface {
	Subscribe(subject string, handler func(subject string, data []byte)) error
}

type Recorder struct {
	sink   Sink
	logger *slog.Logger
}

func NewRecorder(sink Sink, logger *slog.Logger) *Recorder {
	return &Recorder{sink: sink, logger: logger}
}

// Start subscribes the recorder to rewrite events. Handlers run on the bus
// client's dispatch goroutine.
func (r *Recorder) Start(sub Subscriber) error {
	return sub.Subscribe(bus.SubjectRewriteCompleted, r.Handle)
}

// Handle persists one rewrite event. Malformed payloads and write failures
// are logged with the event identity so they can be replayed, never returned:
// the bus delivery must not be poisoned by a bad consumer.
func (r *Recorder) Handle(subject string, data []byte) {
	var evt bus.RewriteCompleted
	if err := json.Unmarshal(data, &evt); err != nil {
		r.logger.Error("discarding malformed audit event",
			"subject", subject,
			"error", err,
		)
		return
	}

	rec, err := r.sink.CreateGenerationRecord(context.Background(), store.GenerationRecord{
		StyleName:     evt.StyleName,
		UserTask:      evt.UserTask,
		WordCount:     evt.WordCount,
		Title:         evt.Title,
		Content:       evt.Content,
		Tags:          evt.Tags,
		ExecutionTime: evt.ExecutionTime,
	})
	if err != nil {
		r.logger.Error("failed to record generation, event preserved in log for replay",
			"event_id", evt.EventID,
			"style_id", evt.StyleID,
			"event", string(data),
			"error", err,
		)
		return
	}

	r.logger.Info("generation recorded",
		"record_id", rec.ID,
		"event_id", evt.EventID,
		"style_name", evt.StyleName,
	)
}
