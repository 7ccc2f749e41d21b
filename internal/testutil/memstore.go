package testutil

import (
	"context"
	"sync"

	"checklist/internal/tasklist"
)

// MemoryStore is an in-memory tasklist.Store for testing.
type MemoryStore struct {
	mu    sync.Mutex
	state tasklist.State
	saves int

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates a MemoryStore holding the given tasks.
func NewMemoryStore(tasks []tasklist.Task, nextID int) *MemoryStore {
	return &MemoryStore{state: tasklist.State{Tasks: tasks, NextID: nextID}}
}

// Load implements tasklist.Store.
func (m *MemoryStore) Load(ctx context.Context) (tasklist.State, error) {
	if m.LoadErr != nil {
		return tasklist.State{}, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.state), nil
}

// Save implements tasklist.Store.
func (m *MemoryStore) Save(ctx context.Context, s tasklist.State) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = cloneState(s)
	m.saves++
	return nil
}

// State returns the last saved state.
func (m *MemoryStore) State() tasklist.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.state)
}

// Saves returns how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func cloneState(s tasklist.State) tasklist.State {
	tasks := make([]tasklist.Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	return tasklist.State{Tasks: tasks, NextID: s.NextID}
}
