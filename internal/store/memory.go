package store

import (
	"context"
	"sync"

	"WealthCompass/internal/model"
)

// MemoryLocal implements LocalStore entirely in memory. It is the fallback
// when the SQLite store cannot be opened: the session keeps working, sync
// guarantees just shrink to "this process only".
type MemoryLocal struct {
	mu      sync.Mutex
	state   *model.PortfolioState
	entries []model.PortfolioEntry
}

func NewMemoryLocal() *MemoryLocal { return &MemoryLocal{} }

func (m *MemoryLocal) LoadState() (*model.PortfolioState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	st := *m.state
	return &st, nil
}

func (m *MemoryLocal) SaveState(st *model.PortfolioState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	m.state = &cp
	return nil
}

func (m *MemoryLocal) LoadEntries() ([]model.PortfolioEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.PortfolioEntry(nil), m.entries...), nil
}

func (m *MemoryLocal) SaveEntries(entries []model.PortfolioEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]model.PortfolioEntry(nil), entries...)
	return nil
}

func (m *MemoryLocal) Close() error { return nil }

// MemoryRemote implements RemoteStore in memory. It backs offline mode, where
// no remote endpoint is configured but the full sync path should still run,
// and serves as a controllable double in tests.
type MemoryRemote struct {
	mu      sync.Mutex
	inputs  map[string]model.PortfolioInputs
	entries map[string][]model.PortfolioEntry
}

func NewMemoryRemote() *MemoryRemote {
	return &MemoryRemote{
		inputs:  make(map[string]model.PortfolioInputs),
		entries: make(map[string][]model.PortfolioEntry),
	}
}

func (m *MemoryRemote) FetchInputs(_ context.Context, userID string) (*model.PortfolioInputs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.inputs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &in, nil
}

func (m *MemoryRemote) SaveInputs(_ context.Context, userID string, in model.PortfolioInputs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs[userID] = in
	return nil
}

func (m *MemoryRemote) ListEntries(_ context.Context, userID string) ([]model.PortfolioEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.PortfolioEntry(nil), m.entries[userID]...), nil
}

func (m *MemoryRemote) InsertEntry(_ context.Context, userID string, e model.PortfolioEntry) error {
	if e.Owner != userID {
		return ErrIdentityMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID] = append(m.entries[userID], e)
	return nil
}

func (m *MemoryRemote) UpdateEntry(_ context.Context, userID string, e model.PortfolioEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.entries[userID] {
		if cur.ID == e.ID {
			if cur.Owner != userID {
				return ErrIdentityMismatch
			}
			m.entries[userID][i] = e
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRemote) DeleteEntry(_ context.Context, userID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.entries[userID]
	for i, cur := range rows {
		if cur.ID == entryID {
			if cur.Owner != userID {
				return ErrIdentityMismatch
			}
			m.entries[userID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
