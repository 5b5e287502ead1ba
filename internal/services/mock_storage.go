package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"fablestream/pkg/state"
)

// MockStorage is an in-memory Storage implementation for testing.
type MockStorage struct {
	mu     sync.Mutex
	states map[uuid.UUID]state.WorldState

	PingErr error
	SaveErr error
	LoadErr error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		states: make(map[uuid.UUID]state.WorldState),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveWorldState(ctx context.Context, id uuid.UUID, ws state.WorldState) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = ws
	return nil
}

func (m *MockStorage) LoadWorldState(ctx context.Context, id uuid.UUID) (*state.WorldState, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.states[id]
	if !ok {
		return nil, nil
	}
	return &ws, nil
}

func (m *MockStorage) DeleteWorldState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}
