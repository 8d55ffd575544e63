package credential

import (
	"sync"

	"tasktrack/internal/client/model"
)

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	session *model.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, ErrNoSession
	}

	return clone(s.session), nil
}

func (s *MemoryStore) Set(session *model.Session) error {
	if err := validate(session); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = clone(session)

	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil

	return nil
}
