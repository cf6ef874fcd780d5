package services

import (
	"sync"

	"github.com/google/uuid"
)

// Session holds the single active project the editor operates on. One
// project is active at a time; mutations and tree reads resolve against it.
type Session struct {
	mu  sync.RWMutex
	id  uuid.UUID
	set bool
}

func NewSession() *Session { return &Session{} }

func (s *Session) Active() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.set
}

func (s *Session) Select(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.set = true
}

// Drop clears the selection when it matches id, used after project deletion.
func (s *Session) Drop(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set && s.id == id {
		s.set = false
		s.id = uuid.Nil
	}
}
