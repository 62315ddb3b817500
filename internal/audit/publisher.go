package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/requestcontext"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. Events are
// also logged and, when a forwarding channel is set, handed to a Worker.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	forward chan<- Event
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithForwarding hands each stored event to ch without blocking; events are
// dropped when the channel is full.
func WithForwarding(ch chan<- Event) Option {
	return func(p *Publisher) {
		p.forward = ch
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills in id, timestamp and request id, then stores the event.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil {
		return err
	}

	if p.logger != nil {
		p.logger.InfoContext(ctx, string(event.Action),
			"log_type", "audit",
			"user_id", event.UserID.String(),
			"subject", event.Subject,
			"request_id", event.RequestID,
		)
	}
	if p.forward != nil {
		select {
		case p.forward <- event:
		default:
			if p.logger != nil {
				p.logger.WarnContext(ctx, "audit forward queue full, dropping event", "event_id", event.ID)
			}
		}
	}
	return nil
}

func (p *Publisher) List(ctx context.Context, userID id.UserID, limit int) ([]Event, error) {
	return p.store.ListByUser(ctx, userID, limit)
}
