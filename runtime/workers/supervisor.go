// Package workers contains the two supervised loops of the board: the
// dispatcher that feeds the aggregates and the renderer that redraws
// the charts, plus the supervisor that owns their lifecycle.
package workers

import (
	"buzzboard/contract"
	errs "buzzboard/errors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const waitTimeBeforeRestart = 200 * time.Millisecond

// Supervisor runs each worker in its own goroutine and owns a shared
// cancellation trigger. A panicking worker is recovered and restarted;
// a worker returning a real error is fatal for the whole group: every
// sibling is cancelled and the first such error is surfaced to run(),
// which turns it into a non-zero exit code.
type Supervisor struct {
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *slog.Logger
	workers []contract.Worker

	mu       sync.Mutex
	firstErr error
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{log: log}
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run blocks until every worker has stopped, either because the parent
// ctx was cancelled or because one of them failed fatally.
func (s *Supervisor) Run(ctx context.Context) error {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer s.cancel()

	for _, worker := range s.workers {
		s.start(supervisedCtx, worker)
	}
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstErr
}

func (s *Supervisor) fail(err error) {
	s.mu.Lock()
	if s.firstErr == nil {
		s.firstErr = err
	}
	s.mu.Unlock()
	s.cancel()
}

// start runs a worker under supervision. If its Run method panics, the
// supervisor recovers and restarts it after a short delay; a failure in
// one worker must not take the recovery loop down with it.
func (s *Supervisor) start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info("Stopping worker", "name", workerName)
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("%w: %v", errs.ErrWorkerPanic, r)
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				s.log.Info("Worker finished", "name", workerName)
				return
			}
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}
			if !errors.Is(err, errs.ErrWorkerPanic) {
				s.log.Error("Worker failed, stopping the group", "name", workerName, "error", err)
				s.fail(err)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(waitTimeBeforeRestart):
			}
		}
	}()
}
