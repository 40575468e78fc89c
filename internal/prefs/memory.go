package prefs

import (
	"context"
	"sync"
)

// MemoryStore keeps preferences in process memory. It is the default when no
// database is configured; preferences then live as long as the server does.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string]string)}
}

func (s *MemoryStore) Theme(_ context.Context, user string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if theme, ok := s.themes[user]; ok {
		return theme, nil
	}
	return ThemeLight, nil
}

func (s *MemoryStore) SetTheme(_ context.Context, user, theme string) error {
	if err := checkTheme(theme); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[user] = theme
	return nil
}
