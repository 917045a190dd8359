package usecase

import (
	"context"
	"fmt"
	"reflect"

	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/metrics"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/pkg/poller"
	"github.com/piresc/triptracker/internal/utils"
)

// applyTrip merges a trip reported by the backend. Lower status codes are
// ignored entirely, equal ones only refresh fields.
func (t *Tracker) applyTrip(trip *models.Trip) Observation {
	if trip == nil {
		return ObservationSame
	}
	if trip.ID != "" && trip.ID != t.st.tripID {
		logger.Warn("Ignoring trip for another id",
			logger.String("tracked", t.st.tripID),
			logger.String("received", trip.ID))
		return ObservationStale
	}

	obs := Observe(t.st.status, trip.Status)
	switch obs {
	case ObservationUnknown:
		logger.Warn("Ignoring unknown trip status",
			logger.String("trip_id", t.st.tripID),
			logger.String("status", string(trip.Status)))
		return obs
	case ObservationStale:
		logger.Debug("Ignoring stale trip status",
			logger.String("trip_id", t.st.tripID),
			logger.String("current", string(t.st.status)),
			logger.String("received", string(trip.Status)))
		return obs
	}

	from := t.st.status
	t.mergeTrip(trip)
	if obs == ObservationAdvance {
		t.transition(from, trip.Status, false)
	}
	return obs
}

func (t *Tracker) mergeTrip(trip *models.Trip) {
	incoming := trip.Clone()
	if incoming.ID == "" {
		incoming.ID = t.st.tripID
	}
	// the local status is authoritative; transition() moves it
	if t.st.trip != nil {
		incoming.Status = t.st.trip.Status
	}

	paid := t.st.userPaid || incoming.UserPaid
	verified := t.st.otpVerified || incoming.DriverVerifiedOTP
	incoming.UserPaid, incoming.DriverVerifiedOTP = paid, verified
	if incoming.Driver == nil && t.st.driver != nil {
		d := *t.st.driver
		incoming.Driver = &d
	}

	changed := !reflect.DeepEqual(t.st.trip, incoming) ||
		paid != t.st.userPaid || verified != t.st.otpVerified
	t.st.trip = incoming
	t.st.userPaid = paid
	t.st.otpVerified = verified
	if incoming.Driver != nil {
		d := *incoming.Driver
		t.st.driver = &d
	}
	if changed {
		t.touch()
	}
}

// applyLocal moves forward to a status decided on this side
func (t *Tracker) applyLocal(to models.TripStatus) {
	if Observe(t.st.status, to) != ObservationAdvance {
		return
	}
	t.transition(t.st.status, to, true)
}

// transition performs the side effects of entering a new status. It never
// re-enters itself: follow-up transitions are queued after the current op.
func (t *Tracker) transition(from, to models.TripStatus, local bool) {
	tripID := t.mustTripID()

	t.st.status = to
	if t.st.trip != nil {
		t.st.trip.Status = to
	}
	t.touch()

	metrics.ObserveTransition(string(from), string(to))
	logger.Info("Trip status changed",
		logger.String("trip_id", tripID),
		logger.String("from", string(from)),
		logger.String("to", string(to)),
		logger.Bool("local", local))

	event := models.TripStatusEvent{
		TripID:     tripID,
		Role:       t.cfg.Role,
		From:       from,
		To:         to,
		Code:       to.Code(),
		Local:      local,
		OccurredAt: t.clk.Now().UTC(),
	}
	t.emit(func(ctx context.Context) error { return t.events.PublishStatusChanged(ctx, event) })

	if next, ok := autoAdvance(to); ok {
		t.later(func() { t.autoAdvance(to, next) })
	}
	t.ensureRoute()
}

// autoAdvance enters next if the status is still the one that scheduled it.
// The driver also records it on the backend.
func (t *Tracker) autoAdvance(from, next models.TripStatus) {
	if t.st.status != from {
		return
	}
	t.transition(from, next, true)

	if t.cfg.Role != models.RoleDriver {
		return
	}
	update := models.StatusUpdate{TripID: t.st.tripID, Status: next, Location: copyLocation(t.st.device)}
	epoch := t.st.epoch
	ctx := t.runCtx
	go func() {
		trip, err := t.backend.UpdateTripStatus(ctx, update)
		if err != nil {
			logger.Warn("Failed to record automatic status change",
				logger.String("trip_id", update.TripID),
				logger.String("status", string(next)),
				logger.Err(err))
			return
		}
		t.post(ctx, func() {
			if t.st.epoch == epoch {
				t.applyTrip(trip)
			}
		})
	}()
}

// ensureRoute replaces the route when the leg changed and fetches it when
// missing. A failed fetch leaves the route empty until the next status tick.
func (t *Tracker) ensureRoute() {
	leg := LegOf(t.flow(), t.st.status)
	if leg != t.st.leg {
		t.st.leg = leg
		t.st.route.Clear()
		t.st.routeGen++
		t.st.routeFetching = false
		t.touch()
	}
	if leg == LegNone || t.st.route.Len() > 0 || t.st.routeFetching {
		return
	}

	origin, destination, ok := t.legEndpoints(leg)
	if !ok {
		logger.Debug("Route origin unknown, fetch deferred",
			logger.String("trip_id", t.st.tripID),
			logger.String("leg", string(leg)))
		return
	}

	t.st.routeFetching = true
	epoch, gen := t.st.epoch, t.st.routeGen
	ctx := t.runCtx
	go func() {
		route, err := t.backend.FetchDirections(ctx, origin, destination)
		t.post(ctx, func() {
			if t.st.epoch != epoch || t.st.routeGen != gen {
				return
			}
			t.st.routeFetching = false
			if err != nil {
				logger.Warn("Failed to fetch route",
					logger.String("trip_id", t.st.tripID),
					logger.String("leg", string(leg)),
					logger.Err(err))
				return
			}
			t.replaceRoute(route)
		})
	}()
}

func (t *Tracker) replaceRoute(route []models.Location) {
	t.st.route.Replace(route)
	if t.st.tracked != nil {
		t.st.route.Advance(*t.st.tracked)
	}
	t.touch()
	if f, ok := t.location.(routeFollower); ok && t.cfg.Simulate && t.cfg.Role == models.RoleDriver {
		f.FollowRoute(route)
	}
	logger.Debug("Route replaced",
		logger.String("trip_id", t.st.tripID),
		logger.String("leg", string(t.st.leg)),
		logger.Int("points", len(route)))
}

func (t *Tracker) legEndpoints(leg Leg) (origin, destination models.Location, ok bool) {
	destination, ok = t.legDestination(leg)
	if !ok {
		return origin, destination, false
	}
	switch leg {
	case LegPickup:
		switch {
		case t.st.tracked != nil:
			return *t.st.tracked, destination, true
		case t.st.driver != nil && !t.st.driver.CurrentLocation.IsZero():
			return t.st.driver.CurrentLocation, destination, true
		}
	case LegDropoff:
		return t.st.trip.Pickup.Location, destination, true
	}
	return origin, destination, false
}

func (t *Tracker) legDestination(leg Leg) (models.Location, bool) {
	if t.st.trip == nil {
		return models.Location{}, false
	}
	switch leg {
	case LegPickup:
		return t.st.trip.Pickup.Location, true
	case LegDropoff:
		if dropoff, ok := t.st.trip.Dropoff(); ok {
			return dropoff.Location, true
		}
	}
	return models.Location{}, false
}

// setTracked moves the vehicle and trims the route behind it
func (t *Tracker) setTracked(loc models.Location) {
	if t.st.tracked != nil && *t.st.tracked != loc {
		t.st.heading = utils.Heading(*t.st.tracked, loc)
	}
	t.st.tracked = &loc
	t.st.route.Advance(loc)
	t.touch()
}

func (t *Tracker) pollSucceeded(concern poller.Concern) {
	metrics.ObservePoll(string(concern), metrics.ResultOK)
	if t.st.failures[concern] == 0 {
		return
	}
	t.st.failures[concern] = 0
	if t.st.banner != "" && !t.overBudget() {
		t.st.banner = ""
		t.touch()
	}
}

// pollFailed counts a transient failure; the next tick retries
func (t *Tracker) pollFailed(concern poller.Concern, err error) {
	metrics.ObservePoll(string(concern), metrics.ResultError)
	n := t.st.failures[concern] + 1
	t.st.failures[concern] = n

	if n < t.cfg.FailureBudget {
		logger.Warn("Poll failed",
			logger.String("concern", string(concern)),
			logger.String("trip_id", t.st.tripID),
			logger.Int("consecutive_failures", n),
			logger.Err(err))
		return
	}
	if n == t.cfg.FailureBudget {
		logger.Error("Poll failure budget exhausted",
			logger.String("concern", string(concern)),
			logger.String("trip_id", t.st.tripID),
			logger.Int("consecutive_failures", n),
			logger.Err(err))
	}
	banner := fmt.Sprintf("Unable to reach the server (%s)", concern)
	if t.st.banner != banner {
		t.st.banner = banner
		t.touch()
	}
}

func (t *Tracker) overBudget() bool {
	for _, n := range t.st.failures {
		if n >= t.cfg.FailureBudget {
			return true
		}
	}
	return false
}

func copyLocation(l *models.Location) *models.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
