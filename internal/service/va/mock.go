package va

import (
	"context"
	"sync"
)

// MockService implements Service for unit tests.
type MockService struct {
	mu  sync.RWMutex
	vas map[string]*VA
	Err error
}

// NewMockService creates an empty mock service.
func NewMockService() *MockService {
	return &MockService{vas: make(map[string]*VA)}
}

// Set registers a VA.
func (m *MockService) Set(v *VA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vas[v.ID] = v
}

func (m *MockService) Get(_ context.Context, id string) (*VA, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vas[id]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *MockService) Exists(_ context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vas[id]
	return ok, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
