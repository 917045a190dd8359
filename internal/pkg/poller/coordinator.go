package poller

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/metrics"
)

// Concern names one polling responsibility; at most one timer runs per concern
type Concern string

// Spec describes the timer wanted for a concern
type Spec struct {
	Interval   time.Duration
	Immediate  bool
	Background bool
	// Key identifies what the job is bound to (trip, leg, epoch).
	// A different key restarts the timer.
	Key string
	Job Job
}

func (s Spec) sameTimer(o Spec) bool {
	return s.Interval == o.Interval && s.Background == o.Background && s.Key == o.Key
}

type runningTimer struct {
	spec   Spec
	handle Handle
}

// Coordinator keeps the set of running timers equal to a desired set
type Coordinator struct {
	mu         sync.Mutex
	foreground Host
	background Host
	running    map[Concern]runningTimer
}

// NewCoordinator creates a coordinator. A nil background host falls back to
// the foreground host.
func NewCoordinator(foreground, background Host) *Coordinator {
	if background == nil {
		background = foreground
	}
	return &Coordinator{
		foreground: foreground,
		background: background,
		running:    make(map[Concern]runningTimer),
	}
}

// Reconcile stops timers that are no longer desired or whose spec changed,
// then starts the missing ones. Stops complete before any start.
func (c *Coordinator) Reconcile(desired map[Concern]Spec) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, concern := range sortedConcerns(c.running) {
		r := c.running[concern]
		want, ok := desired[concern]
		if ok && r.spec.sameTimer(want) {
			continue
		}
		c.stopLocked(concern)
	}

	var errs []error
	for _, concern := range sortedConcerns(desired) {
		if _, ok := c.running[concern]; ok {
			continue
		}
		spec := desired[concern]
		host := c.foreground
		if spec.Background {
			host = c.background
		}
		handle, err := host.Start(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("start %s timer: %w", concern, err))
			continue
		}
		c.running[concern] = runningTimer{spec: spec, handle: handle}
		logger.Debug("Timer started",
			logger.String("concern", string(concern)),
			logger.Duration("interval", spec.Interval),
			logger.Bool("background", spec.Background))
	}

	metrics.SetActiveTimers(len(c.running))
	return errors.Join(errs...)
}

// Stop cancels the timer of one concern, if running
func (c *Coordinator) Stop(concern Concern) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked(concern)
	metrics.SetActiveTimers(len(c.running))
}

// StopAll cancels every timer and waits for in-flight jobs to return
func (c *Coordinator) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, concern := range sortedConcerns(c.running) {
		c.stopLocked(concern)
	}
	metrics.SetActiveTimers(0)
}

// Active returns the running concerns in name order
func (c *Coordinator) Active() []Concern {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedConcerns(c.running)
}

func (c *Coordinator) stopLocked(concern Concern) {
	r, ok := c.running[concern]
	if !ok {
		return
	}
	delete(c.running, concern)
	if err := r.handle.Stop(); err != nil {
		logger.Warn("Timer stopped with error",
			logger.String("concern", string(concern)),
			logger.Err(err))
		return
	}
	logger.Debug("Timer stopped", logger.String("concern", string(concern)))
}

func sortedConcerns[V any](m map[Concern]V) []Concern {
	out := make([]Concern, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
