package usecase

import (
	"testing"
	"time"

	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/pkg/poller"
	"github.com/stretchr/testify/assert"
)

var testPolling = models.PollingConfig{
	TripStatus:         3 * time.Second,
	DriverLocation:     time.Second,
	OwnLocation:        3 * time.Second,
	NearbyDrivers:      5 * time.Second,
	UserPaid:           3 * time.Second,
	RideCountdown:      time.Second,
	BackgroundLocation: 15 * time.Second,
}

func concerns(plan map[poller.Concern]TimerPlan) []poller.Concern {
	out := make([]poller.Concern, 0, len(plan))
	for c := range plan {
		out = append(out, c)
	}
	return out
}

func TestDesiredTimers(t *testing.T) {
	tests := []struct {
		name string
		in   PlanInput
		want []poller.Concern
	}{
		{
			name: "idle",
			in:   PlanInput{Role: models.RoleCustomer, Status: models.TripStatusOpenForTrips},
			want: []poller.Concern{},
		},
		{
			name: "loading",
			in:   PlanInput{Role: models.RoleCustomer, Tracking: true},
			want: []poller.Concern{ConcernTripStatus},
		},
		{
			name: "terminal",
			in:   PlanInput{Role: models.RoleDriver, Tracking: true, Status: models.TripStatusDelivered},
			want: []poller.Concern{},
		},
		{
			name: "customer searching",
			in:   PlanInput{Role: models.RoleCustomer, Tracking: true, Status: models.TripStatusFindingDrivers},
			want: []poller.Concern{ConcernTripStatus, ConcernNearbyDrivers},
		},
		{
			name: "customer searching with candidates",
			in:   PlanInput{Role: models.RoleCustomer, Tracking: true, Status: models.TripStatusWaitingForDriverToAccept, HasCandidates: true},
			want: []poller.Concern{ConcernTripStatus},
		},
		{
			name: "customer following driver",
			in:   PlanInput{Role: models.RoleCustomer, Tracking: true, Status: models.TripStatusGoingToPickupLocation, RouteLen: 5, Foreground: true},
			want: []poller.Concern{ConcernTripStatus, ConcernDriverLocation},
		},
		{
			name: "customer leg complete",
			in:   PlanInput{Role: models.RoleCustomer, Tracking: true, Status: models.TripStatusGoingToPickupLocation, RouteLen: 1, Foreground: true},
			want: []poller.Concern{ConcernTripStatus},
		},
		{
			name: "customer waiting for first driver fix",
			in:   PlanInput{Role: models.RoleCustomer, Tracking: true, Status: models.TripStatusTripAccepted, AwaitingOrigin: true, Foreground: true},
			want: []poller.Concern{ConcernTripStatus, ConcernDriverLocation},
		},
		{
			name: "driver driving",
			in:   PlanInput{Role: models.RoleDriver, Tracking: true, Status: models.TripStatusGoingToDeliveryLocation, Foreground: true},
			want: []poller.Concern{ConcernTripStatus, ConcernOwnLocation},
		},
		{
			name: "waiting for payment",
			in:   PlanInput{Role: models.RoleDriver, Tracking: true, Status: models.TripStatusWaitingForUserPayment},
			want: []poller.Concern{ConcernTripStatus, ConcernUserPaid},
		},
		{
			name: "payment done",
			in:   PlanInput{Role: models.RoleDriver, Tracking: true, Status: models.TripStatusWaitingForUserPayment, UserPaid: true},
			want: []poller.Concern{ConcernTripStatus},
		},
		{
			name: "ride running",
			in:   PlanInput{Role: models.RoleCustomer, Flow: models.FlowCarRent, Tracking: true, Status: models.TripStatusRideStarted},
			want: []poller.Concern{ConcernTripStatus, ConcernRideCountdown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DesiredTimers(tt.in, testPolling)
			assert.ElementsMatch(t, tt.want, concerns(got))
		})
	}
}

func TestDesiredTimers_LoadingFiresImmediately(t *testing.T) {
	plan := DesiredTimers(PlanInput{Role: models.RoleDriver, Tracking: true}, testPolling)

	assert.Equal(t, TimerPlan{Interval: 3 * time.Second, Immediate: true}, plan[ConcernTripStatus])
}

func TestDesiredTimers_BackgroundLocationCadence(t *testing.T) {
	in := PlanInput{Role: models.RoleDriver, Tracking: true, Status: models.TripStatusGoingToPickupLocation, Foreground: true}

	fg := DesiredTimers(in, testPolling)
	in.Foreground = false
	bg := DesiredTimers(in, testPolling)

	assert.Equal(t, TimerPlan{Interval: 3 * time.Second}, fg[ConcernOwnLocation])
	assert.Equal(t, TimerPlan{Interval: 15 * time.Second, Background: true}, bg[ConcernOwnLocation])
	assert.Equal(t, fg[ConcernTripStatus], bg[ConcernTripStatus])
}

func TestDesiredTimers_IsPure(t *testing.T) {
	in := PlanInput{Role: models.RoleCustomer, Tracking: true, Status: models.TripStatusGoingToPickupLocation, RouteLen: 3, Foreground: true}

	assert.Equal(t, DesiredTimers(in, testPolling), DesiredTimers(in, testPolling))
}
