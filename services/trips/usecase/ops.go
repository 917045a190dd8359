package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	httpclient "github.com/piresc/triptracker/internal/pkg/http"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/services/trips/gateway"
)

// Track starts tracking a trip created on the backend. Tracking the same
// trip again is a no-op; a different trip replaces the current one.
func (t *Tracker) Track(ctx context.Context, tripID string) error {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return ErrInvalidTripID
	}
	return t.do(ctx, func() error {
		if t.st.tripID == tripID {
			return nil
		}
		t.startTracking(tripID)
		return nil
	})
}

// Reset stops every timer and returns to the idle state
func (t *Tracker) Reset(ctx context.Context) error {
	return t.do(ctx, func() error {
		t.reset()
		return nil
	})
}

// Advance performs the driver's forward action. The backend is written
// first; the local status only moves once it accepted the change.
func (t *Tracker) Advance(ctx context.Context, input models.ForwardInput) error {
	var (
		update models.StatusUpdate
		epoch  uint64
		finish bool
	)
	err := t.do(ctx, func() error {
		if err := t.requireDriverTrip(); err != nil {
			return err
		}
		next, fin, ok := NextForward(t.flow(), t.st.status)
		if !ok {
			return fmt.Errorf("%w: no forward action from %s", ErrInvalidAction, t.st.status)
		}
		if fin {
			finish = true
			t.reset()
			return nil
		}
		if err := ForwardBlock(t.gate()); err != nil {
			return err
		}

		t.beginTransition()
		epoch = t.st.epoch
		update = models.StatusUpdate{
			TripID:   t.st.tripID,
			Status:   next,
			Location: copyLocation(t.st.device),
			Amount:   input.Amount,
		}
		return nil
	})
	if err != nil || finish {
		return err
	}

	trip, callErr := t.backend.UpdateTripStatus(ctx, update)
	return t.finishTransition(ctx, epoch, callErr, func() {
		t.applyLocal(update.Status)
		t.applyTrip(trip)
	})
}

// VerifyOTP checks the code the customer shows the driver at pickup
func (t *Tracker) VerifyOTP(ctx context.Context, otp string) error {
	otp = strings.TrimSpace(otp)
	if !validOTP(otp) {
		return ErrInvalidOTP
	}

	var tripID string
	var epoch uint64
	err := t.do(ctx, func() error {
		if err := t.requireDriverTrip(); err != nil {
			return err
		}
		if t.flow() != models.FlowCarRent || t.st.status != models.TripStatusReachedPickupLocation {
			return fmt.Errorf("%w: otp is verified at the car rent pickup", ErrInvalidAction)
		}
		if t.st.otpVerified {
			return nil
		}
		t.beginTransition()
		tripID, epoch = t.st.tripID, t.st.epoch
		return nil
	})
	if err != nil || tripID == "" {
		return err
	}

	callErr := t.backend.VerifyOTP(ctx, tripID, otp)
	return t.finishTransition(ctx, epoch, callErr, func() {
		t.st.otpVerified = true
		if t.st.trip != nil {
			t.st.trip.DriverVerifiedOTP = true
		}
		logger.Info("OTP verified", logger.String("trip_id", tripID))
	})
}

// RequestPayment asks the customer to pay amount for the picked items
func (t *Tracker) RequestPayment(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	var update models.StatusUpdate
	var epoch uint64
	err := t.do(ctx, func() error {
		if err := t.requireDriverTrip(); err != nil {
			return err
		}
		switch {
		case t.flow() != models.FlowDelivery:
			return fmt.Errorf("%w: payment requests are for deliveries", ErrInvalidAction)
		case t.st.status != models.TripStatusReachedPickupLocation && t.st.status != models.TripStatusPickingItems:
			return fmt.Errorf("%w: cannot request payment in %s", ErrInvalidAction, t.st.status)
		case t.st.userPaid:
			return fmt.Errorf("%w: customer already paid", ErrInvalidAction)
		}
		t.beginTransition()
		epoch = t.st.epoch
		update = models.StatusUpdate{
			TripID:   t.st.tripID,
			Status:   models.TripStatusWaitingForUserPayment,
			Location: copyLocation(t.st.device),
			Amount:   amount,
		}
		return nil
	})
	if err != nil {
		return err
	}

	trip, callErr := t.backend.UpdateTripStatus(ctx, update)
	return t.finishTransition(ctx, epoch, callErr, func() {
		t.applyLocal(update.Status)
		t.applyTrip(trip)
	})
}

// ExtendRide books extra hours on a running car rent
func (t *Tracker) ExtendRide(ctx context.Context, extraHours float64) error {
	if extraHours <= 0 {
		return fmt.Errorf("%w: extra hours", ErrInvalidAmount)
	}

	var tripID string
	var epoch uint64
	err := t.do(ctx, func() error {
		if t.st.trip == nil {
			return ErrNoActiveTrip
		}
		if t.st.inTransition {
			return ErrReentrantTransition
		}
		if t.flow() != models.FlowCarRent ||
			(t.st.status != models.TripStatusReachedPickupLocation && t.st.status != models.TripStatusRideStarted) {
			return fmt.Errorf("%w: rides are extended before they end", ErrInvalidAction)
		}
		t.beginTransition()
		tripID, epoch = t.st.tripID, t.st.epoch
		return nil
	})
	if err != nil {
		return err
	}

	callErr := t.backend.ExtendRide(ctx, tripID, extraHours)
	return t.finishTransition(ctx, epoch, callErr, func() {
		if details, ok := t.st.trip.Details.(*models.CarRentDetails); ok {
			details.TotalHours += extraHours
		}
		t.st.rideEnded = false
		logger.Info("Ride extended",
			logger.String("trip_id", tripID),
			logger.Float64("extra_hours", extraHours))
	})
}

// UpdatePosition feeds a device fix. On the driver side it also moves the
// tracked vehicle.
func (t *Tracker) UpdatePosition(ctx context.Context, location models.Location) error {
	return t.do(ctx, func() error {
		loc := location
		t.st.device = &loc
		t.st.locationDenied = false
		if t.cfg.Role == models.RoleDriver && t.st.tripID != "" {
			t.setTracked(loc)
		}
		t.touch()
		return nil
	})
}

// ReportLocationError records a failed device fix
func (t *Tracker) ReportLocationError(ctx context.Context, locErr error) error {
	return t.do(ctx, func() error {
		if errors.Is(locErr, gateway.ErrPermissionDenied) {
			if !t.st.locationDenied {
				t.st.locationDenied = true
				t.touch()
			}
			return nil
		}
		logger.Warn("Device location unavailable",
			logger.String("trip_id", t.st.tripID),
			logger.Err(locErr))
		return nil
	})
}

// SetForeground switches location polling between the foreground and
// background cadence
func (t *Tracker) SetForeground(ctx context.Context, foreground bool) error {
	return t.do(ctx, func() error {
		if t.st.foreground == foreground {
			return nil
		}
		t.st.foreground = foreground
		t.touch()
		logger.Debug("App state changed", logger.Bool("foreground", foreground))
		return nil
	})
}

func (t *Tracker) requireDriverTrip() error {
	if t.st.trip == nil {
		return ErrNoActiveTrip
	}
	if t.cfg.Role != models.RoleDriver {
		return fmt.Errorf("%w: driver only", ErrInvalidAction)
	}
	if t.st.inTransition {
		return ErrReentrantTransition
	}
	return nil
}

func (t *Tracker) beginTransition() {
	t.st.inTransition = true
	t.st.lastError = ""
	t.touch()
}

// finishTransition lands the result of a backend write on the loop. It
// runs even if ctx was cancelled so the in-flight flag is always cleared.
func (t *Tracker) finishTransition(ctx context.Context, epoch uint64, callErr error, onSuccess func()) error {
	return t.do(context.WithoutCancel(ctx), func() error {
		if t.st.epoch != epoch {
			return callErr
		}
		t.st.inTransition = false
		t.touch()
		if callErr != nil {
			t.st.lastError = backendMessage(callErr)
			return callErr
		}
		onSuccess()
		return nil
	})
}

// backendMessage is what the screen shows for a failed command: the
// backend's own message when it sent one
func backendMessage(err error) string {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return err.Error()
}
