package usecase

import (
	"time"

	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/pkg/poller"
)

// Polling concerns
const (
	ConcernTripStatus     poller.Concern = "trip-status"
	ConcernDriverLocation poller.Concern = "driver-location"
	ConcernOwnLocation    poller.Concern = "own-location"
	ConcernNearbyDrivers  poller.Concern = "nearby-drivers"
	ConcernUserPaid       poller.Concern = "user-paid"
	ConcernRideCountdown  poller.Concern = "ride-countdown"
)

// PlanInput is everything the desired timer set depends on
type PlanInput struct {
	Role           models.Role
	Flow           models.Flow
	Status         models.TripStatus
	Tracking       bool
	RouteLen       int
	Foreground     bool
	UserPaid       bool
	HasCandidates  bool
	// AwaitingOrigin is set while a leg has no route because the vehicle
	// position is still unknown
	AwaitingOrigin bool
}

// TimerPlan is the cadence chosen for one concern
type TimerPlan struct {
	Interval   time.Duration
	Immediate  bool
	Background bool
}

// DesiredTimers computes which timers should run. It is a pure function of
// its input.
func DesiredTimers(in PlanInput, polling models.PollingConfig) map[poller.Concern]TimerPlan {
	desired := make(map[poller.Concern]TimerPlan)
	if !in.Tracking {
		return desired
	}

	// loading: only the status poll, fired right away
	if in.Status == "" {
		desired[ConcernTripStatus] = TimerPlan{Interval: polling.TripStatus, Immediate: true}
		return desired
	}
	if in.Status.Terminal() || !in.Status.Active() {
		return desired
	}

	desired[ConcernTripStatus] = TimerPlan{Interval: polling.TripStatus}

	location := func(foreground time.Duration) TimerPlan {
		if in.Foreground {
			return TimerPlan{Interval: foreground}
		}
		return TimerPlan{Interval: polling.BackgroundLocation, Background: true}
	}

	switch in.Role {
	case models.RoleCustomer:
		switch in.Status {
		case models.TripStatusFindingDrivers, models.TripStatusWaitingForDriverToAccept:
			if !in.HasCandidates {
				desired[ConcernNearbyDrivers] = TimerPlan{Interval: polling.NearbyDrivers, Immediate: true}
			}
		case models.TripStatusTripAccepted, models.TripStatusGoingToPickupLocation,
			models.TripStatusGoingToDeliveryLocation:
			if in.RouteLen > 1 || in.AwaitingOrigin {
				desired[ConcernDriverLocation] = location(polling.DriverLocation)
			}
		}
	case models.RoleDriver:
		switch in.Status {
		case models.TripStatusGoingToPickupLocation, models.TripStatusGoingToDeliveryLocation:
			desired[ConcernOwnLocation] = location(polling.OwnLocation)
		}
	}

	if in.Status == models.TripStatusWaitingForUserPayment && !in.UserPaid {
		desired[ConcernUserPaid] = TimerPlan{Interval: polling.UserPaid}
	}
	if in.Flow == models.FlowCarRent && in.Status == models.TripStatusRideStarted {
		desired[ConcernRideCountdown] = TimerPlan{Interval: polling.RideCountdown, Immediate: true}
	}
	return desired
}
