// Package workers implements C8 (expiration), C9 (cleanup), and C10
// (reminders): independent background loops that read Settings for their
// own cadence on every iteration — rather than a fixed ticker — so an
// operator changing reservation_expire_check_seconds takes effect on the
// worker's very next tick, not after a restart.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/logger"
)

// StopTimeout bounds how long Stop waits for a loop to exit cleanly.
const StopTimeout = 5 * time.Second

// Loop is a cancellable background task with a named cadence setting.
type Loop struct {
	name      string
	iteration func(ctx context.Context) error
	cadence   func(ctx context.Context) time.Duration

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
	running bool
}

// NewLoop builds a Loop. cadence is called after every iteration
// (not just at Start) so the worker always runs on the current setting.
func NewLoop(name string, cadence func(ctx context.Context) time.Duration, iteration func(ctx context.Context) error) *Loop {
	return &Loop{name: name, cadence: cadence, iteration: iteration}
}

// Start launches the loop's goroutine. Calling Start twice without an
// intervening Stop is a no-op.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true

	go l.run(loopCtx)
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	logger.Info().Str("worker", l.name).Msg("worker starting")

	// Initial delay mirrors the original implementation's boot stagger,
	// so every worker doesn't hit the database in the same instant a
	// process comes up.
	select {
	case <-ctx.Done():
		return
	case <-time.After(2 * time.Second):
	}

	for {
		if err := l.iteration(ctx); err != nil {
			logger.Error(err).Str("worker", l.name).Msg("worker iteration failed")
		}

		wait := l.cadence(ctx)
		if wait <= 0 {
			wait = time.Second
		}

		select {
		case <-ctx.Done():
			logger.Info().Str("worker", l.name).Msg("worker stopping")
			return
		case <-time.After(wait):
		}
	}
}

// Stop cancels the loop and waits up to StopTimeout for it to exit.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	done := l.done
	running := l.running
	l.running = false
	l.mu.Unlock()

	if !running || cancel == nil {
		return
	}
	cancel()

	select {
	case <-done:
	case <-time.After(StopTimeout):
		logger.Warn().Str("worker", l.name).Msg("worker did not stop within timeout")
	}
}
