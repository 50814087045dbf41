package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/localplate/localplate/internal"
)

// N8NNotifier posts notifications to n8n webhook workflows, which
// handle routing to Slack, email, or wherever operators watch.
type N8NNotifier struct {
	client          *http.Client
	webhookURL      string
	errorWebhookURL string
	service         string
	env             string
}

var _ Notifier = (*N8NNotifier)(nil)

// NewN8NNotifier creates a notifier from the alerts configuration.
// Returns a NoopNotifier when alerts are disabled or no URLs are set.
func NewN8NNotifier(cfg internal.AlertsConfig, env string) Notifier {
	if !cfg.Enabled || (cfg.WebhookURL == "" && cfg.ErrorWebhookURL == "") {
		return NoopNotifier{}
	}

	errorURL := cfg.ErrorWebhookURL
	if errorURL == "" {
		errorURL = cfg.WebhookURL
	}

	return &N8NNotifier{
		client:          &http.Client{Timeout: 10 * time.Second},
		webhookURL:      cfg.WebhookURL,
		errorWebhookURL: errorURL,
		service:         "localplate",
		env:             env,
	}
}

type n8nEventPayload struct {
	Service   string         `json:"service"`
	Env       string         `json:"env"`
	Kind      string         `json:"kind"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	Timestamp string         `json:"timestamp"`
}

type n8nErrorPayload struct {
	Service   string `json:"service"`
	Env       string `json:"env"`
	Message   string `json:"message"`
	Stack     string `json:"stack,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Path      string `json:"path,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	JobType   string `json:"job_type,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Event posts the event to the main webhook.
func (n *N8NNotifier) Event(ctx context.Context, event Event) error {
	if n.webhookURL == "" {
		return nil
	}

	return n.post(ctx, n.webhookURL, n8nEventPayload{
		Service:   n.service,
		Env:       n.env,
		Kind:      event.Kind,
		Message:   event.Message,
		Fields:    event.Fields,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error posts the failure report to the error webhook.
func (n *N8NNotifier) Error(ctx context.Context, event ErrorEvent) error {
	return n.post(ctx, n.errorWebhookURL, n8nErrorPayload{
		Service:   n.service,
		Env:       n.env,
		Message:   event.Message,
		Stack:     event.Stack,
		RequestID: event.RequestID,
		Path:      event.Path,
		UserID:    event.UserID,
		JobType:   event.JobType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *N8NNotifier) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("alert webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}
	return nil
}
