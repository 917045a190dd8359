package gateway_location

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/services/trips/gateway"
)

// DefaultTimeout bounds how long CurrentPosition waits for a first fix
const DefaultTimeout = 30 * time.Second

// Feed is a device location source fed from outside (the app pushes fixes
// to the local HTTP surface). It implements trips.LocationGW.
type Feed struct {
	mu      sync.Mutex
	clk     clock.Clock
	timeout time.Duration
	last    *models.Location
	denied  bool
	waiters []chan struct{}
}

// NewFeed creates an empty feed
func NewFeed(clk clock.Clock, timeout time.Duration) *Feed {
	if clk == nil {
		clk = clock.New()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Feed{clk: clk, timeout: timeout}
}

// Push records a new fix. A fix also lifts an earlier permission denial.
func (f *Feed) Push(location models.Location) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc := location
	f.last = &loc
	f.denied = false
	f.wakeLocked()
}

// Deny records that the user refused location access
func (f *Feed) Deny() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.denied = true
	f.wakeLocked()
	logger.Warn("Location permission denied")
}

// CurrentPosition returns the latest fix, waiting up to the feed timeout
// for the first one
func (f *Feed) CurrentPosition(ctx context.Context) (models.Location, error) {
	f.mu.Lock()
	if f.denied {
		f.mu.Unlock()
		return models.Location{}, gateway.ErrPermissionDenied
	}
	if f.last != nil {
		loc := *f.last
		f.mu.Unlock()
		return loc, nil
	}
	wake := make(chan struct{})
	f.waiters = append(f.waiters, wake)
	f.mu.Unlock()

	timer := f.clk.Timer(f.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return models.Location{}, ctx.Err()
	case <-timer.C:
		return models.Location{}, gateway.ErrLocationTimeout
	case <-wake:
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied {
		return models.Location{}, gateway.ErrPermissionDenied
	}
	return *f.last, nil
}

func (f *Feed) wakeLocked() {
	for _, w := range f.waiters {
		close(w)
	}
	f.waiters = nil
}
