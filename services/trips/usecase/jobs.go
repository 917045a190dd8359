package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/metrics"
	"github.com/piresc/triptracker/internal/pkg/models"
	nrpkg "github.com/piresc/triptracker/internal/pkg/newrelic"
	"github.com/piresc/triptracker/internal/pkg/poller"
	"github.com/piresc/triptracker/services/trips/gateway"
)

// poll does the I/O of one tick off the loop. The returned func applies the
// result on the loop.
type poll func(ctx context.Context) (func(), error)

// desiredSpecs turns the current state into the timer set that should run
func (t *Tracker) desiredSpecs() map[poller.Concern]poller.Spec {
	tripID := t.st.tripID
	_, _, originKnown := t.legEndpoints(t.st.leg)
	plan := DesiredTimers(PlanInput{
		Role:           t.cfg.Role,
		Flow:           t.flow(),
		Status:         t.st.status,
		Tracking:       tripID != "",
		RouteLen:       t.st.route.Len(),
		Foreground:     t.st.foreground,
		UserPaid:       t.st.userPaid,
		HasCandidates:  len(t.st.candidates) > 0,
		AwaitingOrigin: t.st.leg != LegNone && t.st.route.Len() == 0 && !originKnown,
	}, t.polling)

	specs := make(map[poller.Concern]poller.Spec, len(plan))
	for concern, p := range plan {
		key := fmt.Sprintf("%s#%d", tripID, t.st.epoch)
		if concern == ConcernDriverLocation || concern == ConcernOwnLocation {
			key += "/" + string(t.st.leg)
		}
		fn := t.pollFor(concern, tripID)
		if fn == nil {
			continue
		}
		specs[concern] = poller.Spec{
			Interval:   p.Interval,
			Immediate:  p.Immediate,
			Background: p.Background,
			Key:        key,
			Job:        t.pollJob(concern, t.st.epoch, fn),
		}
	}
	return specs
}

func (t *Tracker) pollFor(concern poller.Concern, tripID string) poll {
	switch concern {
	case ConcernTripStatus:
		return t.pollTripStatus(tripID)
	case ConcernDriverLocation:
		return t.pollDriverLocation(tripID)
	case ConcernOwnLocation:
		return t.pollOwnLocation()
	case ConcernNearbyDrivers:
		if t.st.trip == nil {
			return nil
		}
		return t.pollNearbyDrivers(tripID, t.st.trip.Pickup.Location)
	case ConcernUserPaid:
		return t.pollUserPaid(tripID)
	case ConcernRideCountdown:
		return t.pollRideCountdown()
	}
	return nil
}

// pollJob wraps a poll with tracing and posts its outcome to the loop.
// Results from an older epoch are dropped.
func (t *Tracker) pollJob(concern poller.Concern, epoch uint64, fn poll) poller.Job {
	return func(ctx context.Context) {
		txnCtx, end := nrpkg.StartBackgroundTransaction(ctx, t.nrApp, "poll/"+string(concern))
		nrpkg.AddTransactionAttribute(txnCtx, "concern", string(concern))
		apply, err := fn(txnCtx)
		end(err)

		if ctx.Err() != nil {
			metrics.ObservePoll(string(concern), metrics.ResultSkipped)
			return
		}
		t.post(ctx, func() {
			if t.st.epoch != epoch {
				metrics.ObservePoll(string(concern), metrics.ResultStale)
				return
			}
			if err != nil {
				t.pollFailed(concern, err)
				return
			}
			t.pollSucceeded(concern)
			if apply != nil {
				apply()
			}
		})
	}
}

func (t *Tracker) pollTripStatus(tripID string) poll {
	customer := t.cfg.Role == models.RoleCustomer
	return func(ctx context.Context) (func(), error) {
		trip, err := t.backend.FetchTrip(ctx, tripID)
		if err != nil {
			return nil, fmt.Errorf("fetch trip: %w", err)
		}

		var driver *models.DriverInfo
		if customer && trip.Status.Valid() && trip.Status.Code() < models.TripStatusTripAccepted.Code() {
			driver, err = t.backend.FetchAcceptedDriver(ctx, tripID)
			if err != nil {
				return nil, fmt.Errorf("fetch accepted driver: %w", err)
			}
		}

		return func() {
			t.applyTrip(trip)
			if driver != nil {
				t.applyAcceptedDriver(*driver)
			}
			t.ensureRoute()
		}, nil
	}
}

// applyAcceptedDriver moves the customer to TripAccepted once a driver took
// the trip, ahead of the backend status catching up
func (t *Tracker) applyAcceptedDriver(driver models.DriverInfo) {
	t.st.driver = &driver
	if t.st.trip != nil {
		d := driver
		t.st.trip.Driver = &d
	}
	t.st.candidates = nil
	t.touch()
	if t.st.status != "" && t.st.status.Code() < models.TripStatusTripAccepted.Code() {
		t.applyLocal(models.TripStatusTripAccepted)
	}
}

func (t *Tracker) pollDriverLocation(tripID string) poll {
	return func(ctx context.Context) (func(), error) {
		loc, err := t.backend.FetchDriverLocation(ctx, tripID)
		if err != nil {
			return nil, fmt.Errorf("fetch driver location: %w", err)
		}
		if loc == nil {
			return nil, nil
		}
		return func() {
			t.setTracked(*loc)
			t.ensureRoute()
		}, nil
	}
}

func (t *Tracker) pollOwnLocation() poll {
	return func(ctx context.Context) (func(), error) {
		if t.location == nil {
			return nil, nil
		}
		loc, err := t.location.CurrentPosition(ctx)
		if errors.Is(err, gateway.ErrPermissionDenied) {
			return func() {
				if !t.st.locationDenied {
					t.st.locationDenied = true
					t.touch()
				}
			}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read device position: %w", err)
		}
		if err := t.backend.UpdateOwnLocation(ctx, loc); err != nil {
			return nil, fmt.Errorf("update own location: %w", err)
		}
		return func() {
			t.st.locationDenied = false
			t.st.device = &loc
			t.setTracked(loc)
		}, nil
	}
}

func (t *Tracker) pollNearbyDrivers(tripID string, around models.Location) poll {
	return func(ctx context.Context) (func(), error) {
		drivers, err := t.backend.FetchNearbyDrivers(ctx, tripID, around)
		if err != nil {
			return nil, fmt.Errorf("fetch nearby drivers: %w", err)
		}
		return func() {
			if len(drivers) == 0 {
				return
			}
			t.st.candidates = append([]models.DriverInfo(nil), drivers...)
			t.touch()
			if t.st.status == models.TripStatusFindingDrivers {
				t.applyLocal(models.TripStatusWaitingForDriverToAccept)
			}
		}, nil
	}
}

func (t *Tracker) pollUserPaid(tripID string) poll {
	return func(ctx context.Context) (func(), error) {
		paid, err := t.backend.CheckPayment(ctx, tripID)
		if err != nil {
			return nil, fmt.Errorf("check payment: %w", err)
		}
		return func() {
			if !paid || t.st.userPaid {
				return
			}
			t.st.userPaid = true
			if t.st.trip != nil {
				t.st.trip.UserPaid = true
			}
			t.touch()
			logger.Info("Customer paid", logger.String("trip_id", t.st.tripID))
		}, nil
	}
}

// pollRideCountdown republishes so the remaining time stays current
func (t *Tracker) pollRideCountdown() poll {
	return func(ctx context.Context) (func(), error) {
		return func() {
			t.touch()
			rt, ok := t.remainingTime()
			if ok && rt.Expired() && !t.st.rideEnded {
				t.st.rideEnded = true
				logger.Info("Booked ride time is over", logger.String("trip_id", t.st.tripID))
			}
		}, nil
	}
}
