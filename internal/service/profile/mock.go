package profile

import (
	"context"
	"sync"
	"time"
)

// MockService implements Service for unit tests and local development.
type MockService struct {
	mu         sync.RWMutex
	businesses map[string]*Doc // keyed by owning user ID
	vas        map[string]*Doc
	Err        error // forced error for failure-path tests
}

// NewMockService creates an empty mock service.
func NewMockService() *MockService {
	return &MockService{
		businesses: make(map[string]*Doc),
		vas:        make(map[string]*Doc),
	}
}

// SetBusiness registers a business profile for a user.
func (m *MockService) SetBusiness(userID, profileID string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.businesses[userID] = &Doc{ID: profileID, Fields: fields, UpdatedAt: time.Now().UTC()}
}

// SetVA registers a VA profile for a user.
func (m *MockService) SetVA(userID, profileID string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vas[userID] = &Doc{ID: profileID, Fields: fields, UpdatedAt: time.Now().UTC()}
}

func (m *MockService) BusinessByUser(_ context.Context, userID string) (*Doc, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.businesses[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (m *MockService) VAByUser(_ context.Context, userID string) (*Doc, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.vas[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
