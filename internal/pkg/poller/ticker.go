package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"gopkg.in/tomb.v2"
)

var (
	ErrInvalidInterval = errors.New("poller: interval must be positive")
	ErrAlreadyStarted  = errors.New("poller: ticker already started")
)

// Job is one unit of periodic work. Its context is cancelled when the
// owning ticker is stopped.
type Job func(ctx context.Context)

// Ticker runs a Job on a fixed interval until stopped.
// A ticker is single use: once stopped it cannot be restarted.
type Ticker struct {
	mu       sync.Mutex
	clk      clock.Clock
	interval time.Duration
	job      Job
	started  bool
	stopped  bool
	t        tomb.Tomb
}

// NewTicker creates a ticker; a nil clock means the wall clock
func NewTicker(clk clock.Clock, interval time.Duration, job Job) *Ticker {
	if clk == nil {
		clk = clock.New()
	}
	return &Ticker{clk: clk, interval: interval, job: job}
}

// Start launches the ticker goroutine. When immediate is set the job runs
// once right away, then on every interval.
func (t *Ticker) Start(immediate bool) error {
	if t.interval <= 0 {
		return ErrInvalidInterval
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return ErrAlreadyStarted
	}
	t.started = true

	// created here so a clock advanced right after Start is observed
	tk := t.clk.Ticker(t.interval)
	ctx := t.t.Context(nil)

	t.t.Go(func() error {
		defer tk.Stop()
		if immediate {
			t.job(ctx)
		}
		for {
			select {
			case <-t.t.Dying():
				return nil
			case <-tk.C:
				if !t.t.Alive() {
					return nil
				}
				t.job(ctx)
			}
		}
	})
	return nil
}

// Stop cancels the ticker and blocks until any running job has returned.
// After Stop returns the job is never invoked again.
func (t *Ticker) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started || t.stopped {
		return nil
	}
	t.stopped = true
	t.t.Kill(nil)
	return t.t.Wait()
}

// Interval returns the ticker period
func (t *Ticker) Interval() time.Duration {
	return t.interval
}
