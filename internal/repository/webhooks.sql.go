package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertWebhookEvent = `-- name: InsertWebhookEvent :one
INSERT INTO webhook_events (provider, event_id, event_type, payload)
VALUES ($1, $2, $3, $4)
ON CONFLICT (provider, event_id) DO NOTHING
RETURNING id, provider, event_id, event_type, payload, received_at
`

type InsertWebhookEventParams struct {
	Provider  string
	EventID   string
	EventType string
	Payload   []byte
}

// InsertWebhookEvent records a provider event exactly once, returning
// pgx.ErrNoRows when the event was already recorded. Callers use that
// signal to skip reprocessing replayed deliveries.
func (q *Queries) InsertWebhookEvent(ctx context.Context, arg InsertWebhookEventParams) (WebhookEvent, error) {
	row := q.db.QueryRow(ctx, insertWebhookEvent,
		arg.Provider,
		arg.EventID,
		arg.EventType,
		arg.Payload,
	)
	var i WebhookEvent
	err := row.Scan(
		&i.ID,
		&i.Provider,
		&i.EventID,
		&i.EventType,
		&i.Payload,
		&i.ReceivedAt,
	)
	return i, err
}

const deleteWebhookEvent = `-- name: DeleteWebhookEvent :exec
DELETE FROM webhook_events WHERE provider = $1 AND event_id = $2
`

type DeleteWebhookEventParams struct {
	Provider string
	EventID  string
}

// DeleteWebhookEvent removes the processed marker for one event so a
// redelivery will be handled again. Used when processing fails after the
// marker was written.
func (q *Queries) DeleteWebhookEvent(ctx context.Context, arg DeleteWebhookEventParams) error {
	_, err := q.db.Exec(ctx, deleteWebhookEvent, arg.Provider, arg.EventID)
	return err
}

const deleteWebhookEventsBefore = `-- name: DeleteWebhookEventsBefore :execrows
DELETE FROM webhook_events WHERE received_at < $1
`

func (q *Queries) DeleteWebhookEventsBefore(ctx context.Context, before pgtype.Timestamptz) (int64, error) {
	result, err := q.db.Exec(ctx, deleteWebhookEventsBefore, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
