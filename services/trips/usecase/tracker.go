package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/pkg/poller"
	"github.com/piresc/triptracker/internal/pkg/polyline"
	"github.com/piresc/triptracker/services/trips"
)

// ErrTrackerStopped is returned by operations issued after Run returned
var ErrTrackerStopped = errors.New("tracker stopped")

// routeFollower is implemented by location sources that replay the route
type routeFollower interface {
	FollowRoute(route []models.Location)
}

// state is owned by the loop goroutine; nothing else reads or writes it
type state struct {
	epoch  uint64
	tripID string
	trip   *models.Trip
	// status is empty while the first fetch of a tracked trip is pending
	status models.TripStatus

	driver     *models.DriverInfo
	candidates []models.DriverInfo

	route         *polyline.Tracker
	leg           Leg
	routeGen      uint64
	routeFetching bool

	// tracked is the vehicle, device is this phone
	tracked *models.Location
	device  *models.Location
	heading float64

	foreground     bool
	locationDenied bool
	userPaid       bool
	otpVerified    bool
	inTransition   bool
	rideEnded      bool

	failures  map[poller.Concern]int
	banner    string
	lastError string
}

func newState(epoch uint64) state {
	return state{
		epoch:      epoch,
		status:     models.TripStatusOpenForTrips,
		route:      polyline.NewTracker(nil),
		foreground: true,
		failures:   make(map[poller.Concern]int),
	}
}

// Tracker is the single owner of the trip state. Every mutation runs on the
// goroutine started by Run; I/O runs elsewhere and posts its result back.
type Tracker struct {
	cfg      models.TrackingConfig
	polling  models.PollingConfig
	backend  trips.BackendGW
	location trips.LocationGW
	events   trips.EventGW
	repo     trips.TripRepo
	coord    *poller.Coordinator
	clk      clock.Clock
	nrApp    *newrelic.Application

	ops     chan func()
	done    chan struct{}
	runOnce sync.Once
	runCtx  context.Context

	pending []func()
	dirty   bool
	st      state

	subsMu  sync.Mutex
	subs    map[int]chan models.Snapshot
	nextSub int
	latest  models.Snapshot
	version uint64

	persist *persister
	outbox  chan func(context.Context)
}

// Deps are the collaborators of a Tracker
type Deps struct {
	// Backend is required
	Backend  trips.BackendGW
	Location trips.LocationGW
	Events   trips.EventGW
	Repo     trips.TripRepo
	// Coordinator defaults to in-process foreground and background hosts
	Coordinator *poller.Coordinator
	Clock       clock.Clock
	NewRelic    *newrelic.Application
}

// NewTracker creates a tracker. Nothing runs until Run is called.
func NewTracker(cfg models.TrackingConfig, polling models.PollingConfig, deps Deps) *Tracker {
	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}
	coord := deps.Coordinator
	if coord == nil {
		coord = poller.NewCoordinator(poller.NewForegroundHost(clk), poller.NewInProcessBackgroundHost(clk))
	}
	if cfg.FailureBudget <= 0 {
		cfg.FailureBudget = 5
	}
	if cfg.Role == "" {
		cfg.Role = models.RoleCustomer
	}

	t := &Tracker{
		cfg:      cfg,
		polling:  polling,
		backend:  deps.Backend,
		location: deps.Location,
		events:   deps.Events,
		repo:     deps.Repo,
		coord:    coord,
		clk:      clk,
		nrApp:    deps.NewRelic,
		ops:      make(chan func()),
		done:     make(chan struct{}),
		runCtx:   context.Background(),
		st:       newState(0),
		subs:     make(map[int]chan models.Snapshot),
		persist:  newPersister(deps.Repo),
		outbox:   make(chan func(context.Context), 64),
	}
	t.latest = t.snapshot()
	return t
}

// Run owns the event loop until ctx is cancelled. Timers are stopped before
// it returns.
func (t *Tracker) Run(ctx context.Context) error {
	started := false
	t.runOnce.Do(func() { started = true })
	if !started {
		return errors.New("tracker already running")
	}

	t.runCtx = ctx
	go t.persist.run(ctx)
	go t.drainOutbox(ctx)

	if t.cfg.ResumeOnStart {
		t.resume(ctx)
	}
	t.settle()

	logger.Info("Trip tracker started",
		logger.String("role", string(t.cfg.Role)),
		logger.Bool("simulate", t.cfg.Simulate))

	for {
		select {
		case <-ctx.Done():
			t.coord.StopAll()
			close(t.done)
			logger.Info("Trip tracker stopped")
			return nil
		case op := <-t.ops:
			t.apply(op)
		}
	}
}

func (t *Tracker) resume(ctx context.Context) {
	if t.repo == nil {
		return
	}
	tripID, err := t.repo.LoadActive(ctx, t.cfg.Role)
	if err != nil {
		logger.Warn("Failed to load active trip", logger.Err(err))
		return
	}
	if tripID == "" {
		return
	}
	logger.Info("Resuming trip tracking", logger.String("trip_id", tripID))
	t.startTracking(tripID)
}

// apply runs one op plus the follow-ups it queued, then settles timers and
// subscribers once
func (t *Tracker) apply(op func()) {
	op()
	for len(t.pending) > 0 {
		next := t.pending[0]
		t.pending = t.pending[1:]
		next()
	}
	t.settle()
}

func (t *Tracker) settle() {
	if err := t.coord.Reconcile(t.desiredSpecs()); err != nil {
		logger.Warn("Failed to reconcile timers", logger.Err(err))
	}
	if t.dirty {
		t.dirty = false
		t.publish()
	}
}

// do runs fn on the loop and waits for its result
func (t *Tracker) do(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	op := func() { errCh <- fn() }

	select {
	case t.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return ErrTrackerStopped
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return ErrTrackerStopped
	}
}

// post hands fn to the loop without waiting. It gives up once ctx is done,
// which is how a job being stopped lets its ticker shut down.
func (t *Tracker) post(ctx context.Context, fn func()) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case t.ops <- fn:
		return true
	case <-ctx.Done():
		return false
	case <-t.done:
		return false
	}
}

// later queues fn to run on the loop right after the current op
func (t *Tracker) later(fn func()) {
	t.pending = append(t.pending, fn)
}

func (t *Tracker) touch() {
	t.dirty = true
}

// mustTripID guards every status transition
func (t *Tracker) mustTripID() string {
	if t.st.tripID == "" {
		panic(fmt.Sprintf("trip transition attempted without a trip id (status %q)", t.st.status))
	}
	return t.st.tripID
}

func (t *Tracker) flow() models.Flow {
	if t.st.trip == nil {
		return models.FlowDelivery
	}
	return t.st.trip.Flow()
}

// startTracking switches the state to a new trip, loading until its first fetch
func (t *Tracker) startTracking(tripID string) {
	if t.st.tripID != "" {
		t.reset()
	}
	t.st.tripID = tripID
	t.st.status = ""
	t.touch()
	t.persist.enqueue(func(ctx context.Context) error {
		return t.repo.SaveActive(ctx, t.cfg.Role, tripID)
	})
	logger.Info("Tracking trip", logger.String("trip_id", tripID))
}

// reset cancels every timer, then drops all trip state
func (t *Tracker) reset() {
	t.coord.StopAll()

	tripID, last := t.st.tripID, t.st.status
	next := newState(t.st.epoch + 1)
	next.foreground = t.st.foreground
	next.device = t.st.device
	next.locationDenied = t.st.locationDenied
	t.st = next
	t.pending = nil
	t.touch()

	if tripID == "" {
		return
	}
	role := t.cfg.Role
	t.persist.clear(tripID, func(ctx context.Context) error {
		return t.repo.Clear(ctx, role, tripID)
	})
	event := models.TripResetEvent{TripID: tripID, Role: role, LastStatus: last, OccurredAt: t.clk.Now().UTC()}
	t.emit(func(ctx context.Context) error { return t.events.PublishReset(ctx, event) })
	logger.Info("Trip tracking reset",
		logger.String("trip_id", tripID),
		logger.String("last_status", string(last)))
}

// emit queues an event for publishing off the loop
func (t *Tracker) emit(fn func(ctx context.Context) error) {
	if t.events == nil {
		return
	}
	job := func(ctx context.Context) {
		if err := fn(ctx); err != nil {
			logger.Warn("Failed to publish tracker event", logger.Err(err))
		}
	}
	select {
	case t.outbox <- job:
	default:
		logger.Warn("Tracker event dropped: outbox full")
	}
}

func (t *Tracker) drainOutbox(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-t.outbox:
			job(ctx)
		}
	}
}
