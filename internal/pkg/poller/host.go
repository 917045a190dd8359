package poller

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Handle stops a running timer
type Handle interface {
	Stop() error
}

// Host starts timers for the coordinator
type Host interface {
	Start(spec Spec) (Handle, error)
}

// ForegroundHost runs timers as in-process tickers
type ForegroundHost struct {
	clk clock.Clock
}

// NewForegroundHost creates a host backed by in-process tickers
func NewForegroundHost(clk clock.Clock) *ForegroundHost {
	return &ForegroundHost{clk: clk}
}

// Start implements Host
func (h *ForegroundHost) Start(spec Spec) (Handle, error) {
	tk := NewTicker(h.clk, spec.Interval, spec.Job)
	if err := tk.Start(spec.Immediate); err != nil {
		return nil, err
	}
	return tk, nil
}

// BackgroundTask is the platform facility that keeps a job running while
// the app is not in the foreground
type BackgroundTask interface {
	Start(interval time.Duration, immediate bool, job Job) error
	Stop() error
}

// BackgroundHost delegates timers to background tasks
type BackgroundHost struct {
	newTask func() BackgroundTask
}

// NewBackgroundHost creates a host creating one task per timer
func NewBackgroundHost(newTask func() BackgroundTask) *BackgroundHost {
	return &BackgroundHost{newTask: newTask}
}

// NewInProcessBackgroundHost creates a background host whose tasks are
// plain in-process tickers
func NewInProcessBackgroundHost(clk clock.Clock) *BackgroundHost {
	return NewBackgroundHost(func() BackgroundTask {
		return &inProcessTask{clk: clk}
	})
}

// Start implements Host
func (h *BackgroundHost) Start(spec Spec) (Handle, error) {
	task := h.newTask()
	if err := task.Start(spec.Interval, spec.Immediate, spec.Job); err != nil {
		return nil, err
	}
	return task, nil
}

type inProcessTask struct {
	clk    clock.Clock
	ticker *Ticker
}

func (t *inProcessTask) Start(interval time.Duration, immediate bool, job Job) error {
	t.ticker = NewTicker(t.clk, interval, job)
	return t.ticker.Start(immediate)
}

func (t *inProcessTask) Stop() error {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.Stop()
}
