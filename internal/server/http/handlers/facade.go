package handlers

import (
	"context"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
)

// SessionFacade resolves the caller's session.
type SessionFacade interface {
	OpenSession(id string) (string, bool)
}

// InputFacade edits and reads the session's input store.
type InputFacade interface {
	SetField(ctx context.Context, sessionID, name, raw string) error
	SetFields(ctx context.Context, sessionID string, values map[string]string) error
	Inputs(ctx context.Context, sessionID string) (model.CustomerMetricsInput, error)
}

// SubmissionFacade drives the session's Lifecycle Controller.
type SubmissionFacade interface {
	Submit(ctx context.Context, sessionID string) (model.SubmissionState, error)
	State(sessionID string) (model.SubmissionState, error)
}

// PredictorFacade aggregates the full set of operations used across handlers.
type PredictorFacade interface {
	SessionFacade
	InputFacade
	SubmissionFacade
}

// HealthChecker reports whether the input store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
