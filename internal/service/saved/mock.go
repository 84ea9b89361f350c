package saved

import (
	"context"
	"slices"
	"sync"
)

// MockStore is an in-memory Store for handler and service tests. Set Err
// to force every call to fail with it.
type MockStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	Err     error
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{entries: make(map[string]Entry)}
}

// Seed inserts entries directly, bypassing the uniqueness check.
func (m *MockStore) Seed(entries ...Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range entries {
		if entry.ID == "" {
			entry.ID = entryDocID(entry.BusinessID, entry.VAID)
		}
		m.entries[entryDocID(entry.BusinessID, entry.VAID)] = entry
	}
}

func (m *MockStore) Create(_ context.Context, entry Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	key := entryDocID(entry.BusinessID, entry.VAID)
	if _, exists := m.entries[key]; exists {
		return nil, ErrAlreadySaved
	}
	entry.ID = key
	m.entries[key] = entry
	return &entry, nil
}

func (m *MockStore) Get(_ context.Context, businessID, vaID string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	entry, ok := m.entries[entryDocID(businessID, vaID)]
	if !ok {
		return nil, ErrNotSaved
	}
	return &entry, nil
}

func (m *MockStore) Delete(_ context.Context, businessID, vaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	key := entryDocID(businessID, vaID)
	if _, ok := m.entries[key]; !ok {
		return ErrNotSaved
	}
	delete(m.entries, key)
	return nil
}

func (m *MockStore) ListByBusiness(_ context.Context, businessID string, offset, limit int) ([]Entry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}
	all := m.byBusiness(businessID)
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *MockStore) CountByBusiness(_ context.Context, businessID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.byBusiness(businessID)), nil
}

func (m *MockStore) DeleteByBusiness(_ context.Context, businessID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	removed := 0
	for key, entry := range m.entries {
		if entry.BusinessID == businessID {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// byBusiness returns a business's entries ordered by save date descending,
// matching the Firestore query order. Callers hold the lock.
func (m *MockStore) byBusiness(businessID string) []Entry {
	var out []Entry
	for _, entry := range m.entries {
		if entry.BusinessID == businessID {
			out = append(out, entry)
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return b.SavedAt.Compare(a.SavedAt)
	})
	return out
}

// Compile-time interface check
var _ Store = (*MockStore)(nil)
