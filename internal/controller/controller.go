package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/usecase"
)

// Predictor issues one scoring call per invocation.
type Predictor interface {
	Submit(ctx context.Context, payload model.PredictionPayload) (*model.PredictionResult, error)
}

// Observer receives submission telemetry.
type Observer interface {
	ObserveSubmission(duration time.Duration, err *domainErrors.RequestError)
	ObserveRejected()
}

// Option customizes a Controller.
type Option func(*Controller)

// WithStrictInput makes submissions with non-numeric fields fail before any call is made.
func WithStrictInput(strict bool) Option {
	return func(c *Controller) { c.strict = strict }
}

// WithObserver attaches telemetry.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// Controller owns one SubmissionState and drives it through
// idle -> submitting -> settled|failed. At most one call is outstanding.
type Controller struct {
	client   Predictor
	logger   *slog.Logger
	strict   bool
	observer Observer

	mu     sync.Mutex
	state  model.SubmissionState
	closed bool
}

// New creates a controller in the idle state.
func New(client Predictor, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: logger,
		state:  model.IdleState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() model.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one submission for input and blocks until it resolves.
// While another submission is in flight it returns ErrSubmissionInFlight without calling the client.
// The scoring call is not cancelled when ctx is.
func (c *Controller) Submit(ctx context.Context, input model.CustomerMetricsInput) (model.SubmissionState, error) {
	if err := c.begin(); err != nil {
		if errors.Is(err, domainErrors.ErrSubmissionInFlight) {
			c.observe(func(o Observer) { o.ObserveRejected() })
			c.logger.Warn("submission ignored, another one is in flight")
		}
		return c.State(), err
	}

	start := time.Now()
	outcome := c.run(ctx, input)
	elapsed := time.Since(start)

	settled := c.settle(outcome)
	c.observe(func(o Observer) { o.ObserveSubmission(elapsed, outcome.Err) })
	if !settled {
		c.logger.Debug("submission resolved after controller was closed", slog.String("phase", string(outcome.Phase)))
		return outcome, domainErrors.ErrControllerClosed
	}

	attrs := []any{slog.String("phase", string(outcome.Phase)), slog.Duration("latency", elapsed)}
	if outcome.Err != nil {
		attrs = append(attrs, slog.String("kind", string(outcome.Err.Kind)), slog.String("error", outcome.Err.Error()))
	}
	c.logger.Info("submission settled", attrs...)
	return outcome, nil
}

// Close detaches the controller from its host. Later resolutions are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) begin() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domainErrors.ErrControllerClosed
	}
	if c.state.InFlight() {
		c.mu.Unlock()
		return domainErrors.ErrSubmissionInFlight
	}
	c.state = model.SubmittingState()
	c.mu.Unlock()
	return nil
}

// run never returns a submitting state: every path, panics included, ends settled or failed.
func (c *Controller) run(ctx context.Context, input model.CustomerMetricsInput) (outcome model.SubmissionState) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("submission panicked", slog.Any("panic", r))
			outcome = model.FailedState(domainErrors.Unknown(fmt.Sprint(r), nil))
		}
	}()

	payload := usecase.BuildPayload(input)
	if c.strict {
		if err := usecase.ValidatePayload(payload); err != nil {
			return model.FailedState(domainErrors.Unknown(err.Error(), err))
		}
	}

	result, err := c.client.Submit(context.WithoutCancel(ctx), payload)
	if err != nil {
		return model.FailedState(asRequestError(err))
	}
	if result == nil {
		result = &model.PredictionResult{}
	}
	return model.SettledState(*result)
}

func (c *Controller) settle(outcome model.SubmissionState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.state = outcome
	return true
}

// observe runs fn against the observer, recovering from a panic.
func (c *Controller) observe(fn func(Observer)) {
	if c.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("submission observer panicked", slog.Any("panic", r))
		}
	}()
	fn(c.observer)
}

func asRequestError(err error) *domainErrors.RequestError {
	var reqErr *domainErrors.RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return domainErrors.Unknown(err.Error(), err)
}
