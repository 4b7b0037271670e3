package test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/clvpredictor/internal/domain/errors"
	"github.com/polkiloo/clvpredictor/internal/domain/model"
)

// ScoringClientStub returns canned results and records payloads.
type ScoringClientStub struct {
	SubmitFn func(context.Context, model.PredictionPayload) (*model.PredictionResult, error)
	Result   *model.PredictionResult
	Err      error

	mu       sync.Mutex
	payloads []model.PredictionPayload
}

// Submit records payload then delegates to SubmitFn or returns the canned outcome.
func (s *ScoringClientStub) Submit(ctx context.Context, payload model.PredictionPayload) (*model.PredictionResult, error) {
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, payload)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Result, nil
}

// Payloads returns every payload received so far.
func (s *ScoringClientStub) Payloads() []model.PredictionPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PredictionPayload(nil), s.payloads...)
}

// Calls returns the number of Submit invocations.
func (s *ScoringClientStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

// BlockingScoringClient holds every call until Release is called.
type BlockingScoringClient struct {
	started chan struct{}
	release chan struct{}
	calls   int32

	mu     sync.Mutex
	result *model.PredictionResult
	err    error
}

// NewBlockingScoringClient creates a client that resolves with result or err once released.
func NewBlockingScoringClient(result *model.PredictionResult, err error) *BlockingScoringClient {
	return &BlockingScoringClient{
		started: make(chan struct{}, 16),
		release: make(chan struct{}, 16),
		result:  result,
		err:     err,
	}
}

// Submit blocks until released.
func (c *BlockingScoringClient) Submit(ctx context.Context, _ model.PredictionPayload) (*model.PredictionResult, error) {
	atomic.AddInt32(&c.calls, 1)
	c.started <- struct{}{}
	<-c.release
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.err
}

// WaitStarted blocks until a call is outstanding.
func (c *BlockingScoringClient) WaitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-c.started:
	case <-time.After(time.Second):
		t.Fatal("scoring call was not dispatched")
	}
}

// Release lets one outstanding call return.
func (c *BlockingScoringClient) Release() {
	c.release <- struct{}{}
}

// Reset changes the outcome of subsequent calls.
func (c *BlockingScoringClient) Reset(result *model.PredictionResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = result
	c.err = err
}

// Calls returns the number of dispatched calls.
func (c *BlockingScoringClient) Calls() int {
	return int(atomic.LoadInt32(&c.calls))
}

// ObserverStub counts submission telemetry.
type ObserverStub struct {
	mu          sync.Mutex
	submissions int
	rejected    int
	last        *domainErrors.RequestError
}

// ObserveSubmission records a resolved submission.
func (o *ObserverStub) ObserveSubmission(_ time.Duration, err *domainErrors.RequestError) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.submissions++
	o.last = err
}

// ObserveRejected records a guard hit.
func (o *ObserverStub) ObserveRejected() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected++
}

// Snapshot returns counters and the last error seen.
func (o *ObserverStub) Snapshot() (submissions, rejected int, last *domainErrors.RequestError) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.submissions, o.rejected, o.last
}
