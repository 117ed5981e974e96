package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]string),
	}
}

func (m *MemoryStore) Save(ctx context.Context, token, userID string) error {
	m.mu.Lock()
	m.sessions[token] = userID
	m.mu.Unlock()

	return nil
}

func (m *MemoryStore) Lookup(ctx context.Context, token string) (string, error) {
	m.mu.RLock()
	userID, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()

	return nil
}
