package assistant

import (
	"context"
	"sync"
)

// MockProvider is a test double for Provider. Set ChatFunc or EmbedFunc
// to script behavior; defaults answer with plain text and small
// deterministic vectors.
type MockProvider struct {
	ChatFunc  func(ctx context.Context, params ChatParams) (*ChatResult, error)
	EmbedFunc func(ctx context.Context, texts []string) ([][]float32, error)

	mu         sync.Mutex
	chatCalls  []ChatParams
	embedCalls [][]string
}

var _ Provider = (*MockProvider)(nil)

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Chat(ctx context.Context, params ChatParams) (*ChatResult, error) {
	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, params)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, params)
	}
	return &ChatResult{Content: "ok"}, nil
}

func (m *MockProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.embedCalls = append(m.embedCalls, append([]string(nil), texts...))
	m.mu.Unlock()

	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)), 1, 0}
	}
	return vectors, nil
}

// ChatCalls returns a copy of every recorded Chat invocation.
func (m *MockProvider) ChatCalls() []ChatParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatParams(nil), m.chatCalls...)
}

// EmbedCalls returns a copy of every recorded Embed invocation.
func (m *MockProvider) EmbedCalls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.embedCalls...)
}
