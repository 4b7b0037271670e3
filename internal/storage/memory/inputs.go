package memory

import (
	"context"
	"sync"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/domain/repository"
)

// InputRepository keeps draft inputs in process memory.
type InputRepository struct {
	mu     sync.RWMutex
	inputs map[string]model.CustomerMetricsInput
}

// NewInputRepository creates an empty store.
func NewInputRepository() *InputRepository {
	return &InputRepository{inputs: make(map[string]model.CustomerMetricsInput)}
}

func (r *InputRepository) SetField(_ context.Context, sessionID string, field model.MetricField, raw string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.inputs[sessionID]
	if !ok {
		current = model.DefaultMetricsInput()
	}
	r.inputs[sessionID] = current.With(field, raw)
	return nil
}

func (r *InputRepository) CurrentValues(_ context.Context, sessionID string) (model.CustomerMetricsInput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if current, ok := r.inputs[sessionID]; ok {
		return current, nil
	}
	return model.DefaultMetricsInput(), nil
}

func (r *InputRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inputs, sessionID)
	return nil
}

var _ repository.InputRepository = (*InputRepository)(nil)

// Ping always succeeds for the in-process store.
func (r *InputRepository) Ping(context.Context) error {
	return nil
}
