package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	postmarkEndpoint = "https://api.postmarkapp.com/email"

	// All marketplace mail is transactional (verification, receipts,
	// waitlist openings), so everything rides the outbound stream.
	postmarkStream = "outbound"
)

// PostmarkSender delivers mail through the Postmark HTTP API.
type PostmarkSender struct {
	token  string
	client *http.Client
}

// NewPostmarkSender creates a sender authenticated by the given server token.
func NewPostmarkSender(token string) *PostmarkSender {
	return &PostmarkSender{
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type postmarkMessage struct {
	From          string               `json:"From"`
	To            string               `json:"To"`
	Subject       string               `json:"Subject"`
	HtmlBody      string               `json:"HtmlBody,omitempty"`
	TextBody      string               `json:"TextBody,omitempty"`
	MessageStream string               `json:"MessageStream"`
	Headers       []postmarkHeader     `json:"Headers,omitempty"`
	Attachments   []postmarkAttachment `json:"Attachments,omitempty"`
}

type postmarkHeader struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type postmarkAttachment struct {
	Name        string `json:"Name"`
	Content     string `json:"Content"`
	ContentType string `json:"ContentType"`
}

type postmarkResult struct {
	MessageID string `json:"MessageID"`
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

// Send posts the email to Postmark and returns the provider message ID.
func (p *PostmarkSender) Send(ctx context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", ErrNoRecipients
	}

	body, err := json.Marshal(buildPostmarkMessage(email))
	if err != nil {
		return "", fmt.Errorf("marshal postmark message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postmarkEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build postmark request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post to postmark: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read postmark response: %w", err)
	}

	// Postmark signals delivery problems both ways: HTTP status for
	// transport and auth, ErrorCode in the body for rejected messages.
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("postmark returned status %d: %s", resp.StatusCode, respBody)
	}

	var result postmarkResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode postmark response: %w", err)
	}
	if result.ErrorCode != 0 {
		return "", fmt.Errorf("postmark rejected message (code %d): %s", result.ErrorCode, result.Message)
	}

	return result.MessageID, nil
}

func buildPostmarkMessage(email *Email) postmarkMessage {
	msg := postmarkMessage{
		From:          email.From,
		To:            strings.Join(email.To, ","),
		Subject:       email.Subject,
		HtmlBody:      email.HTMLBody,
		TextBody:      email.TextBody,
		MessageStream: postmarkStream,
	}

	for name, value := range email.Headers {
		msg.Headers = append(msg.Headers, postmarkHeader{Name: name, Value: value})
	}

	for _, att := range email.Attachments {
		msg.Attachments = append(msg.Attachments, postmarkAttachment{
			Name:        att.Filename,
			Content:     base64.StdEncoding.EncodeToString(att.Content),
			ContentType: att.ContentType,
		})
	}

	return msg
}
