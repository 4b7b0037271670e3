package model

import domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"

// SubmissionPhase identifies which variant of SubmissionState is active.
type SubmissionPhase string

const (
	PhaseIdle       SubmissionPhase = "idle"
	PhaseSubmitting SubmissionPhase = "submitting"
	PhaseSettled    SubmissionPhase = "settled"
	PhaseFailed     SubmissionPhase = "failed"
)

// SubmissionState is the tagged union Idle | Submitting | Settled(result) | Failed(error).
// Result is set only when Phase is PhaseSettled, Err only when Phase is PhaseFailed.
type SubmissionState struct {
	Phase  SubmissionPhase
	Result *PredictionResult
	Err    *domainErrors.RequestError
}

// IdleState is the initial state.
func IdleState() SubmissionState {
	return SubmissionState{Phase: PhaseIdle}
}

// SubmittingState marks an outstanding call with no stale outcome attached.
func SubmittingState() SubmissionState {
	return SubmissionState{Phase: PhaseSubmitting}
}

// SettledState wraps a successful result.
func SettledState(result PredictionResult) SubmissionState {
	return SubmissionState{Phase: PhaseSettled, Result: &result}
}

// FailedState wraps a classified request error.
func FailedState(err *domainErrors.RequestError) SubmissionState {
	return SubmissionState{Phase: PhaseFailed, Err: err}
}

// InFlight reports whether a call is outstanding.
func (s SubmissionState) InFlight() bool {
	return s.Phase == PhaseSubmitting
}
