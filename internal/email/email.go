package email

import "context"

// Email is one outbound message, already rendered. The service builds
// these from templates; senders only deliver them.
type Email struct {
	To       []string
	From     string // overrides the sender's configured address when set
	Subject  string
	TextBody string
	HTMLBody string

	// Optional extras. Both senders pass these through as given.
	Attachments []Attachment
	Headers     map[string]string
}

// Attachment is a file carried with the message.
type Attachment struct {
	Filename    string
	ContentType string // MIME type, e.g. "application/pdf"
	Content     []byte
}

// Sender delivers a rendered message. SMTPSender talks to any relay,
// including Mailpit in development; PostmarkSender uses the Postmark
// API and wins when both are configured.
type Sender interface {
	// Send returns the provider's message ID. SMTP relays do not
	// surface one, so SMTPSender synthesizes an ID instead.
	Send(ctx context.Context, email *Email) (string, error)
}
