package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionFacade exposes the subset of application functionality required by the sweeper.
type SessionFacade interface {
	IdleSessions(ctx context.Context, idleFor time.Duration, limit int) ([]string, error)
	EndSession(ctx context.Context, sessionID string) error
}

// SessionSweeper periodically tears down idle sessions using a pool of workers.
type SessionSweeper struct {
	facade    SessionFacade
	interval  time.Duration
	idleFor   time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs the sweeper worker pool.
func NewSessionSweeper(facade SessionFacade, interval, idleFor time.Duration, batchSize, workers int, logger *slog.Logger) *SessionSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SessionSweeper{
		facade:    facade,
		interval:  interval,
		idleFor:   idleFor,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
	}
}

// Start launches background sweeping.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.jobs = make(chan string, s.batchSize)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, s.jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, s.jobs)
}

// Stop waits for all workers to finish.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SessionSweeper) dispatch(ctx context.Context, jobs chan<- string) {
	defer s.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (s *SessionSweeper) fetchAndDispatch(ctx context.Context, jobs chan<- string) {
	ids, err := s.facade.IdleSessions(ctx, s.idleFor, s.batchSize)
	if err != nil {
		s.logger.Error("list idle sessions failed", slog.String("error", err.Error()))
		return
	}
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return
		case jobs <- id:
		}
	}
}

func (s *SessionSweeper) worker(ctx context.Context, jobs <-chan string) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-jobs:
			if !ok {
				return
			}
			if err := s.facade.EndSession(ctx, id); err != nil {
				s.logger.Error("end idle session failed", slog.String("session", id), slog.String("error", err.Error()))
				continue
			}
			s.logger.Debug("idle session ended", slog.String("session", id))
		}
	}
}
