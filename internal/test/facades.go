package test

import (
	"context"
	"sync"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
)

// PredictorFacadeStub implements the HTTP facade with overridable behavior.
type PredictorFacadeStub struct {
	OpenFn      func(string) (string, bool)
	SetFieldFn  func(context.Context, string, string, string) error
	SetFieldsFn func(context.Context, string, map[string]string) error
	InputsFn    func(context.Context, string) (model.CustomerMetricsInput, error)
	SubmitFn    func(context.Context, string) (model.SubmissionState, error)
	StateFn     func(string) (model.SubmissionState, error)

	mu     sync.Mutex
	fields []map[string]string
}

// OpenSession returns id unchanged when set, otherwise a fixed new session.
func (s *PredictorFacadeStub) OpenSession(id string) (string, bool) {
	if s.OpenFn != nil {
		return s.OpenFn(id)
	}
	if id != "" {
		return id, false
	}
	return "session", true
}

// SetField delegates to SetFieldFn.
func (s *PredictorFacadeStub) SetField(ctx context.Context, sessionID, name, raw string) error {
	if s.SetFieldFn != nil {
		return s.SetFieldFn(ctx, sessionID, name, raw)
	}
	s.record(map[string]string{name: raw})
	return nil
}

// SetFields delegates to SetFieldsFn and records values.
func (s *PredictorFacadeStub) SetFields(ctx context.Context, sessionID string, values map[string]string) error {
	if s.SetFieldsFn != nil {
		return s.SetFieldsFn(ctx, sessionID, values)
	}
	s.record(values)
	return nil
}

// Inputs returns defaults unless overridden.
func (s *PredictorFacadeStub) Inputs(ctx context.Context, sessionID string) (model.CustomerMetricsInput, error) {
	if s.InputsFn != nil {
		return s.InputsFn(ctx, sessionID)
	}
	return model.DefaultMetricsInput(), nil
}

// Submit returns an empty settled state unless overridden.
func (s *PredictorFacadeStub) Submit(ctx context.Context, sessionID string) (model.SubmissionState, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, sessionID)
	}
	return model.SettledState(model.PredictionResult{}), nil
}

// State returns idle unless overridden.
func (s *PredictorFacadeStub) State(sessionID string) (model.SubmissionState, error) {
	if s.StateFn != nil {
		return s.StateFn(sessionID)
	}
	return model.IdleState(), nil
}

// Recorded returns every field set written through the stub.
func (s *PredictorFacadeStub) Recorded() []map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]string(nil), s.fields...)
}

func (s *PredictorFacadeStub) record(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	s.fields = append(s.fields, copied)
}
