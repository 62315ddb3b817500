package audit

import (
	"context"
	"log/slog"
)

// Sink receives audit events after they are stored, e.g. a message broker.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker drains forwarded events into a Sink. Sink failures are logged and
// the event is skipped; the store remains the record of truth.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run blocks until ctx is done or the inbox is closed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.sink.Publish(ctx, event); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "failed to forward audit event",
					"event_id", event.ID,
					"action", string(event.Action),
					"error", err,
				)
			}
		}
	}
}
