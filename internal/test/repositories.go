package test

import (
	"context"
	"sync"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/domain/repository"
)

// InputRepositoryStub keeps inputs in a map unless overridden.
type InputRepositoryStub struct {
	SetFn     func(context.Context, string, model.MetricField, string) error
	CurrentFn func(context.Context, string) (model.CustomerMetricsInput, error)
	DeleteFn  func(context.Context, string) error

	mu      sync.Mutex
	inputs  map[string]model.CustomerMetricsInput
	deleted []string
}

// NewInputRepositoryStub creates an empty stub.
func NewInputRepositoryStub() *InputRepositoryStub {
	return &InputRepositoryStub{inputs: make(map[string]model.CustomerMetricsInput)}
}

// SetField stores raw for the session.
func (s *InputRepositoryStub) SetField(ctx context.Context, sessionID string, field model.MetricField, raw string) error {
	if s.SetFn != nil {
		return s.SetFn(ctx, sessionID, field, raw)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.inputs[sessionID]
	if !ok {
		current = model.DefaultMetricsInput()
	}
	s.inputs[sessionID] = current.With(field, raw)
	return nil
}

// CurrentValues returns stored values or defaults.
func (s *InputRepositoryStub) CurrentValues(ctx context.Context, sessionID string) (model.CustomerMetricsInput, error) {
	if s.CurrentFn != nil {
		return s.CurrentFn(ctx, sessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.inputs[sessionID]; ok {
		return current, nil
	}
	return model.DefaultMetricsInput(), nil
}

// Delete forgets the session.
func (s *InputRepositoryStub) Delete(ctx context.Context, sessionID string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, sessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inputs, sessionID)
	s.deleted = append(s.deleted, sessionID)
	return nil
}

// DeletedSessions returns sessions removed so far.
func (s *InputRepositoryStub) DeletedSessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

var _ repository.InputRepository = (*InputRepositoryStub)(nil)

// HealthCheckerStub returns Err from Ping and counts calls.
type HealthCheckerStub struct {
	Err error

	mu    sync.Mutex
	calls int
}

// Ping reports Err.
func (s *HealthCheckerStub) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.Err
}

// Calls returns the number of Ping invocations.
func (s *HealthCheckerStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
