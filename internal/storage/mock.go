package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MockStorage is an in-memory Storage implementation for testing.
type MockStorage struct {
	mu    sync.Mutex
	files map[string][]byte

	// PutFunc overrides Put when set, for simulating upload failures.
	PutFunc func(ctx context.Context, key string, content io.Reader, contentType string) (string, error)
}

var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates an empty in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{files: make(map[string][]byte)}
}

// Put stores the content in memory.
func (m *MockStorage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, content, contentType)
	}

	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.files[cleaned] = data
	m.mu.Unlock()

	return m.URL(cleaned), nil
}

// Get returns the stored content for key.
func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	data, ok := m.files[cleaned]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cleaned)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the key. Deleting a missing key is a no-op.
func (m *MockStorage) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.files, cleaned)
	m.mu.Unlock()
	return nil
}

// URL returns a fake URL for the key.
func (m *MockStorage) URL(key string) string {
	return "/uploads/" + key
}

// Exists reports whether the key is stored.
func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	_, ok := m.files[cleaned]
	m.mu.Unlock()
	return ok, nil
}

// Len reports how many files are stored.
func (m *MockStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
