package business

import (
	"context"
	"sync"
)

// MockService implements Service for unit tests.
type MockService struct {
	mu         sync.RWMutex
	businesses map[string]*Business // keyed by owning user ID
	Err        error
}

// NewMockService creates an empty mock service.
func NewMockService() *MockService {
	return &MockService{businesses: make(map[string]*Business)}
}

// Set registers a business for a user.
func (m *MockService) Set(userID string, b *Business) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.businesses[userID] = b
}

func (m *MockService) ByUser(_ context.Context, userID string) (*Business, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.businesses[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
