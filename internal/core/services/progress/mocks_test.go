package progress

import (
	"context"
	"slices"
	"sync"

	"clan-points-tracker/internal/core/domain"
	"clan-points-tracker/internal/core/ports"
)

type mockStore struct {
	mu       sync.Mutex
	records  map[string]domain.PlayerRecord
	puts     int
	getFunc  func(ctx context.Context, id string) (*domain.PlayerRecord, error)
	putFunc  func(ctx context.Context, rec *domain.PlayerRecord) error
	listFunc func(ctx context.Context) ([]string, error)
	topFunc  func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[string]domain.PlayerRecord)}
}

func (m *mockStore) Get(ctx context.Context, id string) (*domain.PlayerRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *mockStore) Put(ctx context.Context, rec *domain.PlayerRecord) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ExternalID] = *rec
	m.puts++
	return nil
}

func (m *mockStore) ListExternalIDs(ctx context.Context) ([]string, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *mockStore) TopDonators(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if m.topFunc != nil {
		return m.topFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockStore) Close() {}

func (m *mockStore) record(id string) domain.PlayerRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}

func (m *mockStore) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// mockFetcher serves one document per player name.
type mockFetcher struct {
	mu        sync.Mutex
	docs      map[string]string
	calls     int
	fetchFunc func(ctx context.Context, name string) (ports.RawDocument, error)
}

func (m *mockFetcher) FetchSnapshot(ctx context.Context, name string) (ports.RawDocument, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return ports.RawDocument(m.docs[name]), nil
}

func (m *mockFetcher) set(name, doc string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs == nil {
		m.docs = make(map[string]string)
	}
	m.docs[name] = doc
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockMembership struct {
	mu         sync.Mutex
	tags       map[string][]string
	addErr     map[string]error
	currentErr error
}

func newMockMembership() *mockMembership {
	return &mockMembership{tags: make(map[string][]string), addErr: make(map[string]error)}
}

func (m *mockMembership) CurrentTags(ctx context.Context, scopeID, id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentErr != nil {
		return nil, m.currentErr
	}
	return slices.Clone(m.tags[id]), nil
}

func (m *mockMembership) Add(ctx context.Context, scopeID, id, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.addErr[tag]; err != nil {
		return err
	}
	if !slices.Contains(m.tags[id], tag) {
		m.tags[id] = append(m.tags[id], tag)
	}
	return nil
}

func (m *mockMembership) Remove(ctx context.Context, scopeID, id, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[id] = slices.DeleteFunc(m.tags[id], func(t string) bool { return t == tag })
	return nil
}

func (m *mockMembership) held(id string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tags[id])
}

type mockLeaderboard struct {
	mu      sync.Mutex
	entries map[string]domain.LeaderboardEntry
	err     error
	topFunc func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

func (m *mockLeaderboard) Record(ctx context.Context, entry domain.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.entries == nil {
		m.entries = make(map[string]domain.LeaderboardEntry)
	}
	m.entries[entry.ExternalID] = entry
	return nil
}

func (m *mockLeaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if m.topFunc != nil {
		return m.topFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockLeaderboard) value(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id].Value
}

type mockProvisioner struct {
	scope string
	tags  []string
	err   error
}

func (m *mockProvisioner) EnsureTags(ctx context.Context, scopeID string, tags []string) ([]string, error) {
	m.scope = scopeID
	m.tags = tags
	if m.err != nil {
		return nil, m.err
	}
	return tags[:1], nil
}
