package app

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/clvpredictor/internal/controller"
	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/usecase"
)

// ScoringProvider issues prediction calls.
type ScoringProvider interface {
	Submit(ctx context.Context, payload model.PredictionPayload) (*model.PredictionResult, error)
}

type session struct {
	controller *controller.Controller
	lastSeen   time.Time
}

// PredictorFacade binds each hosting session to its input store record and Lifecycle Controller.
type PredictorFacade struct {
	inputs *usecase.InputUseCase
	client ScoringProvider
	logger *slog.Logger
	opts   []controller.Option
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewPredictorFacade constructs the facade. Controller options apply to every session.
func NewPredictorFacade(inputs *usecase.InputUseCase, client ScoringProvider, logger *slog.Logger, opts ...controller.Option) *PredictorFacade {
	return &PredictorFacade{
		inputs:   inputs,
		client:   client,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// OpenSession returns id when it names a live session, otherwise starts a new one.
// The boolean reports whether a session was created.
func (f *PredictorFacade) OpenSession(id string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.sessions[id]; ok {
		s.lastSeen = f.now()
		return id, false
	}

	newID := uuid.NewString()
	f.sessions[newID] = &session{
		controller: controller.New(f.client, f.logger.With(slog.String("session", newID)), f.opts...),
		lastSeen:   f.now(),
	}
	f.logger.Debug("session opened", slog.String("session", newID))
	return newID, true
}

// SetField records one raw edit.
func (f *PredictorFacade) SetField(ctx context.Context, sessionID, name, raw string) error {
	if _, err := f.touch(sessionID); err != nil {
		return err
	}
	return f.inputs.SetField(ctx, sessionID, name, raw)
}

// SetFields records several raw edits.
func (f *PredictorFacade) SetFields(ctx context.Context, sessionID string, values map[string]string) error {
	if _, err := f.touch(sessionID); err != nil {
		return err
	}
	return f.inputs.SetFields(ctx, sessionID, values)
}

// Inputs returns the current raw values.
func (f *PredictorFacade) Inputs(ctx context.Context, sessionID string) (model.CustomerMetricsInput, error) {
	if _, err := f.touch(sessionID); err != nil {
		return model.CustomerMetricsInput{}, err
	}
	return f.inputs.CurrentValues(ctx, sessionID)
}

// Submit runs a submission with the session's current values.
func (f *PredictorFacade) Submit(ctx context.Context, sessionID string) (model.SubmissionState, error) {
	c, err := f.touch(sessionID)
	if err != nil {
		return model.SubmissionState{}, err
	}
	input, err := f.inputs.CurrentValues(ctx, sessionID)
	if err != nil {
		return c.State(), err
	}
	return c.Submit(ctx, input)
}

// State returns the session's SubmissionState.
func (f *PredictorFacade) State(sessionID string) (model.SubmissionState, error) {
	c, err := f.touch(sessionID)
	if err != nil {
		return model.SubmissionState{}, err
	}
	return c.State(), nil
}

// IdleSessions lists up to limit sessions unused for idleFor, oldest first. Sessions with a call in flight are skipped.
func (f *PredictorFacade) IdleSessions(_ context.Context, idleFor time.Duration, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := f.now().Add(-idleFor)
	type candidate struct {
		id       string
		lastSeen time.Time
	}
	var idle []candidate
	for id, s := range f.sessions {
		if s.lastSeen.After(cutoff) || s.controller.State().InFlight() {
			continue
		}
		idle = append(idle, candidate{id: id, lastSeen: s.lastSeen})
	}
	sort.Slice(idle, func(i, j int) bool { return idle[i].lastSeen.Before(idle[j].lastSeen) })

	if limit > 0 && len(idle) > limit {
		idle = idle[:limit]
	}
	ids := make([]string, 0, len(idle))
	for _, c := range idle {
		ids = append(ids, c.id)
	}
	return ids, nil
}

// EndSession tears the session down: its controller stops accepting results and its inputs are discarded.
func (f *PredictorFacade) EndSession(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	s, ok := f.sessions[sessionID]
	delete(f.sessions, sessionID)
	f.mu.Unlock()

	if !ok {
		return domainErrors.ErrSessionNotFound
	}
	s.controller.Close()
	return f.inputs.Discard(ctx, sessionID)
}

// EndAll tears down every live session.
func (f *PredictorFacade) EndAll(ctx context.Context) {
	f.mu.Lock()
	ids := make([]string, 0, len(f.sessions))
	for id := range f.sessions {
		ids = append(ids, id)
	}
	f.mu.Unlock()

	for _, id := range ids {
		if err := f.EndSession(ctx, id); err != nil {
			f.logger.Warn("end session failed", slog.String("session", id), slog.String("error", err.Error()))
		}
	}
}

// SessionCount returns the number of live sessions.
func (f *PredictorFacade) SessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *PredictorFacade) touch(sessionID string) (*controller.Controller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, domainErrors.ErrSessionNotFound
	}
	s.lastSeen = f.now()
	return s.controller, nil
}
