package alerts

import (
	"context"
	"sync"
)

// MockNotifier records notifications for assertions in tests.
type MockNotifier struct {
	EventFunc func(ctx context.Context, event Event) error
	ErrorFunc func(ctx context.Context, event ErrorEvent) error

	mu     sync.Mutex
	events []Event
	errors []ErrorEvent
}

var _ Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a mock that accepts everything.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Event records the event.
func (m *MockNotifier) Event(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.EventFunc != nil {
		return m.EventFunc(ctx, event)
	}
	return nil
}

// Error records the error event.
func (m *MockNotifier) Error(ctx context.Context, event ErrorEvent) error {
	m.mu.Lock()
	m.errors = append(m.errors, event)
	m.mu.Unlock()

	if m.ErrorFunc != nil {
		return m.ErrorFunc(ctx, event)
	}
	return nil
}

// Events returns a copy of recorded events.
func (m *MockNotifier) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// Errors returns a copy of recorded error events.
func (m *MockNotifier) Errors() []ErrorEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ErrorEvent(nil), m.errors...)
}
