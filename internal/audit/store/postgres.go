package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pezkuwi/internal/audit"
	id "pezkuwi/pkg/domain"
	txcontext "pezkuwi/pkg/platform/tx"
)

// PostgresStore appends events to audit_events. Appends join an open
// transaction in ctx.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type eventRow struct {
	ID        string    `db:"id"`
	Action    string    `db:"action"`
	UserID    uuid.UUID `db:"user_id"`
	Subject   string    `db:"subject"`
	Detail    string    `db:"detail"`
	RequestID string    `db:"request_id"`
	Timestamp time.Time `db:"timestamp"`
}

func (s *PostgresStore) Append(ctx context.Context, event audit.Event) error {
	const query = `
		INSERT INTO audit_events (id, action, user_id, subject, detail, request_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := txcontext.Conn(ctx, s.db).ExecContext(ctx, query,
		event.ID,
		string(event.Action),
		uuid.UUID(event.UserID),
		event.Subject,
		event.Detail,
		event.RequestID,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, action, user_id, subject, detail, request_id, timestamp
		FROM audit_events
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`
	var rows []eventRow
	if err := txcontext.Conn(ctx, s.db).SelectContext(ctx, &rows, query, uuid.UUID(userID), limit); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	events := make([]audit.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, audit.Event{
			ID:        r.ID,
			Action:    audit.Action(r.Action),
			UserID:    id.UserID(r.UserID),
			Subject:   r.Subject,
			Detail:    r.Detail,
			RequestID: r.RequestID,
			Timestamp: r.Timestamp,
		})
	}
	return events, nil
}
