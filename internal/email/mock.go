package email

import (
	"context"
	"fmt"
	"sync"
)

// MockSender is a mock email sender for testing.
// Records sent emails instead of delivering them.
type MockSender struct {
	// SendFunc allows customizing send behavior (e.g. simulating failures)
	SendFunc func(ctx context.Context, email *Email) (string, error)

	mu sync.Mutex

	// Sent holds every email passed to Send, in order
	Sent []*Email
}

var _ Sender = (*MockSender)(nil)

// NewMockSender creates a new mock email sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the email and returns a synthetic message ID.
func (m *MockSender) Send(ctx context.Context, email *Email) (string, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, email)
	}

	if len(email.To) == 0 {
		return "", ErrNoRecipients
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, email)
	return fmt.Sprintf("mock-%d", len(m.Sent)), nil
}

// LastSent returns the most recently sent email, or nil if none were sent.
func (m *MockSender) LastSent() *Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return m.Sent[len(m.Sent)-1]
}
