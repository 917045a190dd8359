package usecase

import (
	"errors"
	"fmt"

	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/utils"
)

var (
	ErrNoActiveTrip        = errors.New("no active trip")
	ErrInvalidTripID       = errors.New("trip id is required")
	ErrInvalidAction       = errors.New("action not available in the current status")
	ErrActionBlocked       = errors.New("action blocked")
	ErrReentrantTransition = errors.New("a transition is already in progress")
	ErrInvalidOTP          = errors.New("otp must be a 4 digit code")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// Observation is how an incoming backend status relates to the local one
type Observation int

const (
	// ObservationStale means the incoming code is lower and is ignored
	ObservationStale Observation = iota
	// ObservationSame re-applies the current status without side effects
	ObservationSame
	// ObservationAdvance moves forward, possibly skipping states
	ObservationAdvance
	// ObservationUnknown is a status this client does not know
	ObservationUnknown
)

// Observe classifies an incoming status against the current one. The local
// code never decreases; an empty current status accepts anything known.
func Observe(current, incoming models.TripStatus) Observation {
	if !incoming.Valid() {
		return ObservationUnknown
	}
	if current == "" {
		return ObservationAdvance
	}
	switch c, in := current.Code(), incoming.Code(); {
	case in < c:
		return ObservationStale
	case in == c:
		return ObservationSame
	default:
		return ObservationAdvance
	}
}

// Leg is the directed segment of the trip being driven
type Leg string

const (
	LegNone    Leg = ""
	LegPickup  Leg = "pickup"
	LegDropoff Leg = "dropoff"
)

// LegOf returns the leg a status belongs to
func LegOf(flow models.Flow, status models.TripStatus) Leg {
	switch status {
	case models.TripStatusTripAccepted, models.TripStatusGoingToPickupLocation:
		return LegPickup
	case models.TripStatusGoingToDeliveryLocation:
		if flow == models.FlowDelivery {
			return LegDropoff
		}
	}
	return LegNone
}

// autoAdvance returns the status entered right after status without any
// user action
func autoAdvance(status models.TripStatus) (models.TripStatus, bool) {
	if status == models.TripStatusTripAccepted {
		return models.TripStatusGoingToPickupLocation, true
	}
	return "", false
}

var forwardTransitions = map[models.Flow]map[models.TripStatus]models.TripStatus{
	models.FlowDelivery: {
		models.TripStatusGoingToPickupLocation:   models.TripStatusReachedPickupLocation,
		models.TripStatusReachedPickupLocation:   models.TripStatusPickingItems,
		models.TripStatusPickingItems:            models.TripStatusGoingToDeliveryLocation,
		models.TripStatusWaitingForUserPayment:   models.TripStatusGoingToDeliveryLocation,
		models.TripStatusGoingToDeliveryLocation: models.TripStatusReachedDeliveryLocation,
		models.TripStatusReachedDeliveryLocation: models.TripStatusDelivered,
	},
	models.FlowCarRent: {
		models.TripStatusGoingToPickupLocation: models.TripStatusReachedPickupLocation,
		models.TripStatusReachedPickupLocation: models.TripStatusRideStarted,
		models.TripStatusRideStarted:           models.TripStatusWaitingForUserPayment,
		models.TripStatusWaitingForUserPayment: models.TripStatusRideCompleted,
	},
}

// NextForward returns the status the driver's forward action leads to.
// Terminal statuses lead to a reset and report finish.
func NextForward(flow models.Flow, status models.TripStatus) (next models.TripStatus, finish bool, ok bool) {
	if status.Terminal() {
		return models.TripStatusOpenForTrips, true, true
	}
	next, ok = forwardTransitions[flow][status]
	return next, false, ok
}

// Gate holds what the forward action predicate looks at
type Gate struct {
	Flow        models.Flow
	Status      models.TripStatus
	Position    *models.Location
	Pickup      models.Location
	Dropoff     *models.Location
	PickupKm    float64
	DropoffKm   float64
	UserPaid    bool
	OTPVerified bool
}

// ForwardBlock returns why the forward action is disabled, or nil
func ForwardBlock(g Gate) error {
	switch g.Status {
	case models.TripStatusGoingToPickupLocation:
		if !utils.IsNear(g.Position, g.Pickup, g.PickupKm) {
			return blocked("not within reach of the pickup location")
		}
	case models.TripStatusGoingToDeliveryLocation:
		if g.Dropoff == nil || !utils.IsNear(g.Position, *g.Dropoff, g.DropoffKm) {
			return blocked("not within reach of the dropoff location")
		}
	case models.TripStatusPickingItems, models.TripStatusWaitingForUserPayment:
		if !g.UserPaid {
			return blocked("waiting for the customer to pay")
		}
	case models.TripStatusReachedPickupLocation:
		if g.Flow == models.FlowCarRent && !g.OTPVerified {
			return blocked("otp not verified")
		}
	}
	return nil
}

func blocked(reason string) error {
	return fmt.Errorf("%w: %s", ErrActionBlocked, reason)
}

var forwardLabels = map[models.Flow]map[models.TripStatus]string{
	models.FlowDelivery: {
		models.TripStatusGoingToPickupLocation:   "Reached pickup location",
		models.TripStatusReachedPickupLocation:   "Start picking items",
		models.TripStatusPickingItems:            "Start delivery",
		models.TripStatusWaitingForUserPayment:   "Start delivery",
		models.TripStatusGoingToDeliveryLocation: "Reached delivery location",
		models.TripStatusReachedDeliveryLocation: "Items delivered",
		models.TripStatusDelivered:               "Home",
	},
	models.FlowCarRent: {
		models.TripStatusGoingToPickupLocation: "Reached pickup location",
		models.TripStatusReachedPickupLocation: "Start steering",
		models.TripStatusRideStarted:           "End ride",
		models.TripStatusWaitingForUserPayment: "Finish",
		models.TripStatusRideCompleted:         "Home",
		models.TripStatusDelivered:             "Home",
	},
}

// PrimaryAction is the driver's forward button for the given gate
func PrimaryAction(g Gate) *models.Action {
	label, ok := forwardLabels[g.Flow][g.Status]
	if !ok {
		return nil
	}
	action := &models.Action{Label: label, Enabled: true}
	if err := ForwardBlock(g); err != nil {
		action.Enabled = false
		action.Reason = err.Error()
	}
	return action
}

// SecondaryAction is the optional second driver button
func SecondaryAction(g Gate) *models.Action {
	switch {
	case g.Flow == models.FlowCarRent && g.Status == models.TripStatusReachedPickupLocation && !g.OTPVerified:
		return &models.Action{Label: "Enter OTP", Enabled: true}
	case g.Flow == models.FlowDelivery && !g.UserPaid &&
		(g.Status == models.TripStatusReachedPickupLocation || g.Status == models.TripStatusPickingItems):
		return &models.Action{Label: "Request payment", Enabled: true}
	}
	return nil
}

// validOTP accepts exactly four digits
func validOTP(otp string) bool {
	if len(otp) != 4 {
		return false
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
