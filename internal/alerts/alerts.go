package alerts

import (
	"context"
	"log/slog"
	"time"
)

// Notifier delivers operational notifications to an external channel.
// Implementations: N8NNotifier, NoopNotifier
type Notifier interface {
	// Event reports a business event worth a human's attention, like a
	// new chef application or a service area opening.
	Event(ctx context.Context, event Event) error

	// Error reports a server-side failure with enough context to trace
	// it back.
	Error(ctx context.Context, event ErrorEvent) error
}

// Event is an operational notification.
type Event struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// ErrorEvent reports a failure from a request handler or background job.
type ErrorEvent struct {
	Message   string `json:"message"`
	Stack     string `json:"stack,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Path      string `json:"path,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	JobType   string `json:"job_type,omitempty"`
}

// NoopNotifier drops every notification. Used when alerts are disabled.
type NoopNotifier struct{}

var _ Notifier = (*NoopNotifier)(nil)

func (NoopNotifier) Event(ctx context.Context, event Event) error      { return nil }
func (NoopNotifier) Error(ctx context.Context, event ErrorEvent) error { return nil }

// notifyTimeout bounds background webhook delivery.
const notifyTimeout = 5 * time.Second

// NotifyEvent delivers the event in the background. Detached from the
// caller's context so delivery survives the response being sent.
func NotifyEvent(n Notifier, event Event) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := n.Event(ctx, event); err != nil {
			slog.Default().Warn("failed to deliver alert event",
				slog.String("kind", event.Kind),
				slog.String("error", err.Error()))
		}
	}()
}

// NotifyError delivers the error report in the background.
func NotifyError(n Notifier, event ErrorEvent) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := n.Error(ctx, event); err != nil {
			slog.Default().Warn("failed to deliver error alert",
				slog.String("error", err.Error()))
		}
	}()
}
