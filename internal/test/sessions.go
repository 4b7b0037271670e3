package test

import (
	"context"
	"sync"
	"time"
)

// SessionFacadeStub feeds idle session batches to the sweeper.
type SessionFacadeStub struct {
	Batches [][]string
	IdleFn  func(context.Context, time.Duration, int) ([]string, error)
	EndFn   func(context.Context, string) error

	mu      sync.Mutex
	next    int
	ended   []string
	idleFor time.Duration
}

// IdleSessions returns the configured batches in order, then nothing.
func (s *SessionFacadeStub) IdleSessions(ctx context.Context, idleFor time.Duration, limit int) ([]string, error) {
	s.mu.Lock()
	s.idleFor = idleFor
	s.mu.Unlock()

	if s.IdleFn != nil {
		return s.IdleFn(ctx, idleFor, limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.next]
	s.next++
	return batch, nil
}

// EndSession records the ended session.
func (s *SessionFacadeStub) EndSession(ctx context.Context, id string) error {
	if s.EndFn != nil {
		return s.EndFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, id)
	return nil
}

// Ended returns the ids passed to EndSession.
func (s *SessionFacadeStub) Ended() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ended...)
}

// IdleFor returns the last idle threshold requested.
func (s *SessionFacadeStub) IdleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idleFor
}
