package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	httpclient "github.com/piresc/triptracker/internal/pkg/http"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/services/trips/gateway"
	"github.com/piresc/triptracker/services/trips/mocks"
	"github.com/piresc/triptracker/services/trips/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTripID = "trip-42"

var testStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	tracker *Tracker
	backend *mocks.MockBackendGW
	clk     *clock.Mock
}

type fixtureOption func(cfg *models.TrackingConfig, deps *Deps)

func newFixture(t *testing.T, role models.Role, opts ...fixtureOption) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackendGW(ctrl)
	clk := clock.NewMock()
	clk.Set(testStart)

	cfg := models.TrackingConfig{
		Role:                role,
		PickupThresholdKm:   0.1,
		DropoffThresholdKm:  0.1,
		FailureBudget:       3,
		RideEndingThreshold: 10 * time.Minute,
	}
	deps := Deps{Backend: backend, Clock: clk}
	for _, opt := range opts {
		opt(&cfg, &deps)
	}
	tracker := NewTracker(cfg, testPolling, deps)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = tracker.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &fixture{tracker: tracker, backend: backend, clk: clk}
}

func (f *fixture) snapshot(t *testing.T) models.Snapshot {
	t.Helper()
	snap, err := f.tracker.Snapshot(context.Background())
	require.NoError(t, err)
	return snap
}

func (f *fixture) waitFor(t *testing.T, cond func(models.Snapshot) bool) models.Snapshot {
	t.Helper()
	var last models.Snapshot
	require.Eventually(t, func() bool {
		last = f.snapshot(t)
		return cond(last)
	}, 2*time.Second, 5*time.Millisecond, "last snapshot: %+v", last)
	return last
}

// tick advances the clock by one trip-status period until cond holds
func (f *fixture) tickUntil(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		if cond() {
			return true
		}
		f.clk.Add(testPolling.TripStatus)
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

func statusIs(status models.TripStatus) func(models.Snapshot) bool {
	return func(s models.Snapshot) bool { return s.Status == status }
}

func deliveryTrip(status models.TripStatus) *models.Trip {
	return &models.Trip{
		ID:     testTripID,
		Type:   models.TripTypeGroceryDelivery,
		Status: status,
		Pickup: models.Place{Location: testPickup, Name: "Fresh Mart"},
		Details: &models.DeliveryDetails{
			Dropoff: models.Place{Location: testDropoff, Address: "Jl. Sudirman 1"},
		},
	}
}

func carRentTrip(status models.TripStatus, createdAt time.Time, hours float64) *models.Trip {
	return &models.Trip{
		ID:      testTripID,
		Type:    models.TripTypeCarRent,
		Status:  status,
		Pickup:  models.Place{Location: testPickup},
		Details: &models.CarRentDetails{TotalHours: hours, CreatedAt: createdAt},
	}
}

func (f *fixture) serveTrip(trip *models.Trip) {
	f.backend.EXPECT().FetchTrip(gomock.Any(), testTripID).Return(trip, nil).AnyTimes()
}

func (f *fixture) track(t *testing.T, status models.TripStatus) models.Snapshot {
	t.Helper()
	require.NoError(t, f.tracker.Track(context.Background(), testTripID))
	return f.waitFor(t, statusIs(status))
}

func TestTracker_TrackLoadsTripAndRoute(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	driverAt := models.Location{Latitude: -6.1900, Longitude: 106.7900}
	trip := deliveryTrip(models.TripStatusGoingToPickupLocation)
	trip.Driver = &models.DriverInfo{Name: "Budi", VehicleNumber: "B 1234 XYZ", CurrentLocation: driverAt}
	route := []models.Location{driverAt, {Latitude: -6.195, Longitude: 106.795}, testPickup}

	f.serveTrip(trip)
	f.backend.EXPECT().FetchDirections(gomock.Any(), driverAt, testPickup).Return(route, nil).Times(1)
	f.backend.EXPECT().FetchDriverLocation(gomock.Any(), testTripID).Return(&driverAt, nil).AnyTimes()

	// Act
	require.NoError(t, f.tracker.Track(context.Background(), testTripID))

	// Assert
	snap := f.waitFor(t, func(s models.Snapshot) bool { return len(s.Route) == 3 })
	assert.Equal(t, models.TripStatusGoingToPickupLocation, snap.Status)
	assert.Equal(t, 300, snap.StatusCode)
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.Driver)
	assert.Equal(t, "Budi", snap.Driver.Name)
	assert.False(t, snap.LegComplete)
	assert.Contains(t, snap.ActiveTimers, string(ConcernDriverLocation))
	assert.Contains(t, snap.ActiveTimers, string(ConcernTripStatus))
	assert.NotNil(t, snap.Region)
}

func TestTracker_TrackValidation(t *testing.T) {
	f := newFixture(t, models.RoleDriver)
	ctx := context.Background()

	assert.ErrorIs(t, f.tracker.Track(ctx, "  "), ErrInvalidTripID)
	assert.ErrorIs(t, f.tracker.Advance(ctx, models.ForwardInput{}), ErrNoActiveTrip)
	assert.ErrorIs(t, f.tracker.RequestPayment(ctx, 0), ErrInvalidAmount)
	assert.ErrorIs(t, f.tracker.VerifyOTP(ctx, "12a4"), ErrInvalidOTP)
	assert.ErrorIs(t, f.tracker.ExtendRide(ctx, -1), ErrInvalidAmount)

	snap := f.snapshot(t)
	assert.Equal(t, models.TripStatusOpenForTrips, snap.Status)
	assert.Empty(t, snap.ActiveTimers)
}

func TestTracker_StaleStatusIsIgnored(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	var calls atomic.Int32
	f.backend.EXPECT().FetchTrip(gomock.Any(), testTripID).DoAndReturn(
		func(ctx context.Context, tripID string) (*models.Trip, error) {
			if calls.Add(1) == 1 {
				return deliveryTrip(models.TripStatusReachedPickupLocation), nil
			}
			return deliveryTrip(models.TripStatusTripAccepted), nil
		}).AnyTimes()

	// Act
	f.track(t, models.TripStatusReachedPickupLocation)
	f.tickUntil(t, func() bool { return calls.Load() >= 3 })

	// Assert
	snap := f.snapshot(t)
	assert.Equal(t, models.TripStatusReachedPickupLocation, snap.Status)
	assert.Equal(t, 400, snap.StatusCode)
}

func TestTracker_ReapplyingSameStatusIsIdempotent(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	var calls atomic.Int32
	f.backend.EXPECT().FetchTrip(gomock.Any(), testTripID).DoAndReturn(
		func(ctx context.Context, tripID string) (*models.Trip, error) {
			calls.Add(1)
			return deliveryTrip(models.TripStatusPickingItems), nil
		}).AnyTimes()
	f.track(t, models.TripStatusPickingItems)
	f.tickUntil(t, func() bool { return calls.Load() >= 2 })
	before := f.snapshot(t)

	// Act
	f.tickUntil(t, func() bool { return calls.Load() >= 5 })

	// Assert
	after := f.snapshot(t)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.Trip, after.Trip)
	assert.Equal(t, before.ActiveTimers, after.ActiveTimers)
}

func TestTracker_SkippedStatusesAreTolerated(t *testing.T) {
	f := newFixture(t, models.RoleCustomer)
	var calls atomic.Int32
	f.backend.EXPECT().FetchAcceptedDriver(gomock.Any(), testTripID).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().FetchNearbyDrivers(gomock.Any(), testTripID, testPickup).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().FetchDirections(gomock.Any(), testPickup, testDropoff).Return([]models.Location{testPickup, testDropoff}, nil).AnyTimes()
	f.backend.EXPECT().FetchDriverLocation(gomock.Any(), testTripID).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().FetchTrip(gomock.Any(), testTripID).DoAndReturn(
		func(ctx context.Context, tripID string) (*models.Trip, error) {
			if calls.Add(1) == 1 {
				return deliveryTrip(models.TripStatusFindingDrivers), nil
			}
			return deliveryTrip(models.TripStatusGoingToDeliveryLocation), nil
		}).AnyTimes()

	f.track(t, models.TripStatusFindingDrivers)
	f.tickUntil(t, func() bool { return f.snapshot(t).Status == models.TripStatusGoingToDeliveryLocation })

	snap := f.waitFor(t, func(s models.Snapshot) bool { return len(s.Route) == 2 })
	assert.Equal(t, 700, snap.StatusCode)
	assert.NotContains(t, snap.ActiveTimers, string(ConcernNearbyDrivers))
}

func TestTracker_ResetCancelsEveryTimer(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	driverAt := models.Location{Latitude: -6.1950, Longitude: 106.7950}
	trip := deliveryTrip(models.TripStatusGoingToPickupLocation)
	trip.Driver = &models.DriverInfo{Name: "Budi", CurrentLocation: driverAt}
	var calls atomic.Int32
	f.backend.EXPECT().FetchTrip(gomock.Any(), testTripID).DoAndReturn(
		func(ctx context.Context, tripID string) (*models.Trip, error) {
			calls.Add(1)
			return trip, nil
		}).AnyTimes()
	f.backend.EXPECT().FetchDirections(gomock.Any(), gomock.Any(), testPickup).
		Return([]models.Location{driverAt, {Latitude: -6.1975, Longitude: 106.7975}, testPickup}, nil).AnyTimes()
	f.backend.EXPECT().FetchDriverLocation(gomock.Any(), testTripID).DoAndReturn(
		func(ctx context.Context, tripID string) (*models.Location, error) {
			calls.Add(1)
			loc := driverAt
			return &loc, nil
		}).AnyTimes()
	f.track(t, models.TripStatusGoingToPickupLocation)
	seeded := f.waitFor(t, func(s models.Snapshot) bool { return len(s.Route) == 3 })
	require.Eventually(t, func() bool {
		if f.snapshot(t).Position != nil {
			return true
		}
		f.clk.Add(testPolling.DriverLocation)
		return false
	}, 2*time.Second, 5*time.Millisecond)
	require.NotNil(t, seeded.Driver)

	// Act
	require.NoError(t, f.tracker.Reset(context.Background()))
	seen := calls.Load()
	for i := 0; i < 5; i++ {
		f.clk.Add(testPolling.TripStatus)
	}

	// Assert
	snap := f.snapshot(t)
	assert.Equal(t, seen, calls.Load())
	assert.Equal(t, models.TripStatusOpenForTrips, snap.Status)
	assert.Empty(t, snap.TripID)
	assert.Nil(t, snap.Trip)
	assert.Nil(t, snap.Driver)
	assert.Empty(t, snap.Route)
	assert.Nil(t, snap.Position)
	assert.Nil(t, snap.Region)
	assert.Empty(t, snap.ActiveTimers)
	assert.False(t, snap.Loading)
}

func TestTracker_TrackingAnotherTripResets(t *testing.T) {
	f := newFixture(t, models.RoleCustomer)
	f.serveTrip(deliveryTrip(models.TripStatusPickingItems))
	other := deliveryTrip(models.TripStatusWaitingForUserPayment)
	other.ID = "trip-7"
	f.backend.EXPECT().FetchTrip(gomock.Any(), "trip-7").Return(other, nil).AnyTimes()
	f.track(t, models.TripStatusPickingItems)

	require.NoError(t, f.tracker.Track(context.Background(), "trip-7"))

	snap := f.waitFor(t, statusIs(models.TripStatusWaitingForUserPayment))
	assert.Equal(t, "trip-7", snap.TripID)
}

func TestTracker_AdvanceRequiresProximity(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleDriver)
	f.serveTrip(deliveryTrip(models.TripStatusGoingToPickupLocation))
	f.backend.EXPECT().FetchDirections(gomock.Any(), testPickup, testPickup).Return([]models.Location{testPickup}, nil).AnyTimes()
	f.backend.EXPECT().UpdateTripStatus(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, update models.StatusUpdate) (*models.Trip, error) {
			assert.Equal(t, models.TripStatusReachedPickupLocation, update.Status)
			assert.Equal(t, testTripID, update.TripID)
			require.NotNil(t, update.Location)
			return deliveryTrip(update.Status), nil
		}).Times(1)
	ctx := context.Background()
	snap := f.track(t, models.TripStatusGoingToPickupLocation)
	require.NotNil(t, snap.PrimaryAction)
	assert.False(t, snap.PrimaryAction.Enabled)

	// Act
	blockedErr := f.tracker.Advance(ctx, models.ForwardInput{})
	require.NoError(t, f.tracker.UpdatePosition(ctx, testPickup))
	advanceErr := f.tracker.Advance(ctx, models.ForwardInput{})

	// Assert
	assert.ErrorIs(t, blockedErr, ErrActionBlocked)
	assert.NoError(t, advanceErr)
	snap = f.snapshot(t)
	assert.Equal(t, models.TripStatusReachedPickupLocation, snap.Status)
	require.NotNil(t, snap.PrimaryAction)
	assert.Equal(t, "Start picking items", snap.PrimaryAction.Label)
}

func TestTracker_AdvanceIsNotReentrant(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleDriver)
	f.serveTrip(deliveryTrip(models.TripStatusReachedPickupLocation))
	entered := make(chan struct{})
	release := make(chan struct{})
	f.backend.EXPECT().UpdateTripStatus(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, update models.StatusUpdate) (*models.Trip, error) {
			close(entered)
			<-release
			return deliveryTrip(models.TripStatusPickingItems), nil
		}).Times(1)
	f.track(t, models.TripStatusReachedPickupLocation)

	// Act
	firstErr := make(chan error, 1)
	go func() { firstErr <- f.tracker.Advance(context.Background(), models.ForwardInput{}) }()
	<-entered
	secondErr := f.tracker.Advance(context.Background(), models.ForwardInput{})
	close(release)

	// Assert
	assert.ErrorIs(t, secondErr, ErrReentrantTransition)
	assert.NoError(t, <-firstErr)
	assert.Equal(t, models.TripStatusPickingItems, f.snapshot(t).Status)
}

func TestTracker_AdvanceFailureKeepsStatus(t *testing.T) {
	f := newFixture(t, models.RoleDriver)
	f.serveTrip(deliveryTrip(models.TripStatusReachedPickupLocation))
	f.backend.EXPECT().UpdateTripStatus(gomock.Any(), gomock.Any()).
		Return(nil, &httpclient.HTTPError{StatusCode: 409, Message: "Trip was cancelled"}).Times(1)
	f.track(t, models.TripStatusReachedPickupLocation)

	err := f.tracker.Advance(context.Background(), models.ForwardInput{})

	require.Error(t, err)
	snap := f.snapshot(t)
	assert.Equal(t, models.TripStatusReachedPickupLocation, snap.Status)
	assert.Equal(t, "Trip was cancelled", snap.LastError)
}

func TestTracker_OTPRejectionShowsBackendMessage(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleDriver)
	f.serveTrip(carRentTrip(models.TripStatusReachedPickupLocation, testStart, 2))
	gomock.InOrder(
		f.backend.EXPECT().VerifyOTP(gomock.Any(), testTripID, "1111").
			Return(&httpclient.HTTPError{StatusCode: 400, Message: "OTP does not match"}),
		f.backend.EXPECT().VerifyOTP(gomock.Any(), testTripID, "4321").Return(nil),
	)
	ctx := context.Background()
	snap := f.track(t, models.TripStatusReachedPickupLocation)
	require.NotNil(t, snap.SecondaryAction)
	assert.Equal(t, "Enter OTP", snap.SecondaryAction.Label)

	// Act
	rejected := f.tracker.VerifyOTP(ctx, "1111")
	afterReject := f.snapshot(t)
	accepted := f.tracker.VerifyOTP(ctx, "4321")

	// Assert
	var httpErr *httpclient.HTTPError
	require.True(t, errors.As(rejected, &httpErr))
	assert.Equal(t, "OTP does not match", afterReject.LastError)
	assert.False(t, afterReject.OTPVerified)
	assert.False(t, afterReject.PrimaryAction.Enabled)

	assert.NoError(t, accepted)
	snap = f.snapshot(t)
	assert.True(t, snap.OTPVerified)
	assert.Empty(t, snap.LastError)
	assert.True(t, snap.PrimaryAction.Enabled)
	assert.Nil(t, snap.SecondaryAction)
}

func TestTracker_PaymentGatesDelivery(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleDriver)
	f.serveTrip(deliveryTrip(models.TripStatusReachedPickupLocation))
	var paid atomic.Bool
	f.backend.EXPECT().UpdateTripStatus(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, update models.StatusUpdate) (*models.Trip, error) {
			assert.Equal(t, models.TripStatusWaitingForUserPayment, update.Status)
			assert.Equal(t, 25.5, update.Amount)
			return deliveryTrip(update.Status), nil
		}).Times(1)
	f.backend.EXPECT().CheckPayment(gomock.Any(), testTripID).DoAndReturn(
		func(ctx context.Context, tripID string) (bool, error) {
			return paid.Load(), nil
		}).AnyTimes()
	f.track(t, models.TripStatusReachedPickupLocation)

	// Act
	require.NoError(t, f.tracker.RequestPayment(context.Background(), 25.5))
	waiting := f.snapshot(t)
	blocked := f.tracker.Advance(context.Background(), models.ForwardInput{})
	paid.Store(true)
	f.tickUntil(t, func() bool { return f.snapshot(t).UserPaid })

	// Assert
	assert.Equal(t, models.TripStatusWaitingForUserPayment, waiting.Status)
	assert.Contains(t, waiting.ActiveTimers, string(ConcernUserPaid))
	assert.False(t, waiting.PrimaryAction.Enabled)
	assert.ErrorIs(t, blocked, ErrActionBlocked)

	snap := f.snapshot(t)
	assert.True(t, snap.PrimaryAction.Enabled)
	assert.NotContains(t, snap.ActiveTimers, string(ConcernUserPaid))
}

func TestTracker_FinishResetsToIdle(t *testing.T) {
	f := newFixture(t, models.RoleDriver)
	f.serveTrip(deliveryTrip(models.TripStatusDelivered))
	snap := f.track(t, models.TripStatusDelivered)
	require.NotNil(t, snap.PrimaryAction)
	assert.Equal(t, "Home", snap.PrimaryAction.Label)

	require.NoError(t, f.tracker.Advance(context.Background(), models.ForwardInput{}))

	snap = f.snapshot(t)
	assert.Equal(t, models.TripStatusOpenForTrips, snap.Status)
	assert.Empty(t, snap.TripID)
}

func TestTracker_FailureBudgetRaisesBanner(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	var failing atomic.Bool
	var calls atomic.Int32
	f.backend.EXPECT().FetchTrip(gomock.Any(), testTripID).DoAndReturn(
		func(ctx context.Context, tripID string) (*models.Trip, error) {
			calls.Add(1)
			if failing.Load() {
				return nil, errors.New("connection refused")
			}
			return deliveryTrip(models.TripStatusPickingItems), nil
		}).AnyTimes()
	f.track(t, models.TripStatusPickingItems)

	// Act
	failing.Store(true)
	start := calls.Load()
	f.tickUntil(t, func() bool { return f.snapshot(t).Banner != "" })
	failedCalls := calls.Load() - start
	failing.Store(false)
	f.tickUntil(t, func() bool { return f.snapshot(t).Banner == "" })

	// Assert
	assert.GreaterOrEqual(t, failedCalls, int32(3))
	snap := f.snapshot(t)
	assert.Equal(t, models.TripStatusPickingItems, snap.Status)
	assert.Contains(t, snap.ActiveTimers, string(ConcernTripStatus))
}

func TestTracker_RideCountdown(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	f.serveTrip(carRentTrip(models.TripStatusRideStarted, testStart.Add(-time.Hour), 1.5))

	// Act
	snap := f.track(t, models.TripStatusRideStarted)

	// Assert
	require.NotNil(t, snap.RemainingTime)
	assert.Equal(t, 30*time.Minute, snap.RemainingTime.Total)
	assert.Equal(t, 0, snap.RemainingTime.Hours)
	assert.Equal(t, 30, snap.RemainingTime.Minutes)
	assert.False(t, snap.RideEndingSoon)
	assert.Contains(t, snap.ActiveTimers, string(ConcernRideCountdown))

	f.clk.Add(25 * time.Minute)
	snap = f.snapshot(t)
	assert.True(t, snap.RideEndingSoon)
	assert.False(t, snap.RideShouldEnd)

	f.clk.Add(10 * time.Minute)
	snap = f.snapshot(t)
	assert.True(t, snap.RideShouldEnd)
	assert.Equal(t, 0, snap.RemainingTime.Minutes)
}

func TestTracker_ExtendRide(t *testing.T) {
	f := newFixture(t, models.RoleCustomer)
	f.serveTrip(carRentTrip(models.TripStatusRideStarted, testStart, 1))
	f.backend.EXPECT().ExtendRide(gomock.Any(), testTripID, 2.0).Return(nil).Times(1)
	f.track(t, models.TripStatusRideStarted)

	require.NoError(t, f.tracker.ExtendRide(context.Background(), 2))

	snap := f.snapshot(t)
	require.NotNil(t, snap.RemainingTime)
	assert.Equal(t, 3*time.Hour, snap.RemainingTime.Total)
}

func TestTracker_NearbyDriversMoveToWaiting(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	f.serveTrip(deliveryTrip(models.TripStatusFindingDrivers))
	f.backend.EXPECT().FetchAcceptedDriver(gomock.Any(), testTripID).Return(nil, nil).AnyTimes()
	drivers := []models.DriverInfo{
		{ID: "far", Name: "Far", CurrentLocation: models.Location{Latitude: -6.30, Longitude: 106.90}},
		{ID: "near", Name: "Near", CurrentLocation: models.Location{Latitude: -6.201, Longitude: 106.801}},
	}
	f.backend.EXPECT().FetchNearbyDrivers(gomock.Any(), testTripID, testPickup).Return(drivers, nil).AnyTimes()

	// Act
	require.NoError(t, f.tracker.Track(context.Background(), testTripID))

	// Assert
	snap := f.waitFor(t, statusIs(models.TripStatusWaitingForDriverToAccept))
	assert.Len(t, snap.Candidates, 2)
	require.NotNil(t, snap.NearestCandidate)
	assert.Equal(t, "near", snap.NearestCandidate.ID)
	assert.NotContains(t, snap.ActiveTimers, string(ConcernNearbyDrivers))
}

func TestTracker_AcceptedDriverStartsPickupLeg(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	driverAt := models.Location{Latitude: -6.19, Longitude: 106.79}
	f.serveTrip(deliveryTrip(models.TripStatusWaitingForDriverToAccept))
	f.backend.EXPECT().FetchNearbyDrivers(gomock.Any(), testTripID, testPickup).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().FetchAcceptedDriver(gomock.Any(), testTripID).
		Return(&models.DriverInfo{ID: "d-1", Name: "Sari", CurrentLocation: driverAt}, nil).AnyTimes()
	f.backend.EXPECT().FetchDirections(gomock.Any(), driverAt, testPickup).
		Return([]models.Location{driverAt, testPickup}, nil).AnyTimes()
	f.backend.EXPECT().FetchDriverLocation(gomock.Any(), testTripID).Return(&driverAt, nil).AnyTimes()

	// Act
	require.NoError(t, f.tracker.Track(context.Background(), testTripID))

	// Assert
	snap := f.waitFor(t, func(s models.Snapshot) bool {
		return s.Status == models.TripStatusGoingToPickupLocation && len(s.Route) == 2
	})
	require.NotNil(t, snap.Driver)
	assert.Equal(t, "Sari", snap.Driver.Name)
	assert.Empty(t, snap.Candidates)
}

func TestTracker_LocationPermissionDenied(t *testing.T) {
	f := newFixture(t, models.RoleDriver)
	ctx := context.Background()

	require.NoError(t, f.tracker.ReportLocationError(ctx, gateway.ErrPermissionDenied))
	assert.True(t, f.snapshot(t).LocationDenied)

	require.NoError(t, f.tracker.UpdatePosition(ctx, testPickup))
	assert.False(t, f.snapshot(t).LocationDenied)
}

func TestTracker_SubscribeDeliversLatest(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	f.serveTrip(deliveryTrip(models.TripStatusPickingItems))
	updates, cancel := f.tracker.Subscribe()

	initial := <-updates
	assert.Equal(t, models.TripStatusOpenForTrips, initial.Status)

	// Act
	require.NoError(t, f.tracker.Track(context.Background(), testTripID))

	// Assert
	require.Eventually(t, func() bool {
		select {
		case snap := <-updates:
			return snap.Status == models.TripStatusPickingItems
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	_, open := <-updates
	assert.False(t, open)
}

func TestTracker_ResumesActiveTrip(t *testing.T) {
	repo := repository.NewMemoryRepo()
	require.NoError(t, repo.SaveActive(context.Background(), models.RoleCustomer, testTripID))

	f := newFixture(t, models.RoleCustomer, func(cfg *models.TrackingConfig, deps *Deps) {
		cfg.ResumeOnStart = true
		deps.Repo = repo
		// registered before Run so the resumed fetch finds it
		deps.Backend.(*mocks.MockBackendGW).EXPECT().FetchTrip(gomock.Any(), testTripID).
			Return(deliveryTrip(models.TripStatusPickingItems), nil).AnyTimes()
	})

	snap := f.waitFor(t, statusIs(models.TripStatusPickingItems))
	assert.Equal(t, testTripID, snap.TripID)
	require.Eventually(t, func() bool {
		saved, err := repo.LoadSnapshot(context.Background(), testTripID)
		return err == nil && saved != nil && saved.Status == models.TripStatusPickingItems
	}, 2*time.Second, 5*time.Millisecond)
}

func TestTracker_TransitionWithoutTripPanics(t *testing.T) {
	tracker := NewTracker(models.TrackingConfig{Role: models.RoleDriver}, testPolling, Deps{Clock: clock.NewMock()})

	assert.Panics(t, func() {
		tracker.transition(models.TripStatusOpenForTrips, models.TripStatusTripAccepted, true)
	})
}

func TestTracker_PublishesStatusAndResetEvents(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventGW(ctrl)
	changed := make(chan models.TripStatusEvent, 4)
	reset := make(chan models.TripResetEvent, 1)
	events.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, event models.TripStatusEvent) error {
			changed <- event
			return nil
		}).AnyTimes()
	events.EXPECT().PublishReset(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, event models.TripResetEvent) error {
			reset <- event
			return nil
		}).Times(1)
	f := newFixture(t, models.RoleCustomer, func(cfg *models.TrackingConfig, deps *Deps) {
		deps.Events = events
	})
	f.serveTrip(deliveryTrip(models.TripStatusPickingItems))

	// Act
	f.track(t, models.TripStatusPickingItems)
	require.NoError(t, f.tracker.Reset(context.Background()))

	// Assert
	select {
	case event := <-changed:
		assert.Equal(t, testTripID, event.TripID)
		assert.Equal(t, models.TripStatusPickingItems, event.To)
		assert.Equal(t, models.TripStatusPickingItems.Code(), event.Code)
		assert.Equal(t, models.RoleCustomer, event.Role)
	case <-time.After(2 * time.Second):
		t.Fatal("no status event published")
	}
	select {
	case event := <-reset:
		assert.Equal(t, testTripID, event.TripID)
		assert.Equal(t, models.TripStatusPickingItems, event.LastStatus)
	case <-time.After(2 * time.Second):
		t.Fatal("no reset event published")
	}
}

func TestTracker_DriverReportsOwnLocation(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	location := mocks.NewMockLocationGW(ctrl)
	deviceAt := models.Location{Latitude: -6.2005, Longitude: 106.8005}
	location.EXPECT().CurrentPosition(gomock.Any()).Return(deviceAt, nil).AnyTimes()
	f := newFixture(t, models.RoleDriver, func(cfg *models.TrackingConfig, deps *Deps) {
		deps.Location = location
	})
	f.serveTrip(deliveryTrip(models.TripStatusGoingToPickupLocation))
	f.backend.EXPECT().FetchDirections(gomock.Any(), gomock.Any(), testPickup).
		Return([]models.Location{deviceAt, testPickup}, nil).AnyTimes()
	var reported atomic.Int32
	f.backend.EXPECT().UpdateOwnLocation(gomock.Any(), deviceAt).DoAndReturn(
		func(ctx context.Context, loc models.Location) error {
			reported.Add(1)
			return nil
		}).AnyTimes()

	// Act
	f.track(t, models.TripStatusGoingToPickupLocation)
	require.Eventually(t, func() bool {
		if reported.Load() > 0 {
			return true
		}
		f.clk.Add(testPolling.OwnLocation)
		return false
	}, 2*time.Second, 5*time.Millisecond)

	// Assert
	snap := f.waitFor(t, func(s models.Snapshot) bool { return s.Position != nil })
	assert.Equal(t, deviceAt, *snap.Position)
	assert.Contains(t, snap.ActiveTimers, string(ConcernOwnLocation))
	assert.True(t, snap.PrimaryAction.Enabled)
}

func TestTracker_PickupLegWithoutDriverPositionPollsDriver(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleCustomer)
	driverAt := models.Location{Latitude: -6.1900, Longitude: 106.7900}
	trip := deliveryTrip(models.TripStatusGoingToPickupLocation)
	trip.Driver = &models.DriverInfo{Name: "Budi"}
	f.serveTrip(trip)
	f.backend.EXPECT().FetchDriverLocation(gomock.Any(), testTripID).Return(&driverAt, nil).AnyTimes()
	f.backend.EXPECT().FetchDirections(gomock.Any(), driverAt, testPickup).
		Return([]models.Location{driverAt, testPickup}, nil).MinTimes(1)

	// Act
	snap := f.track(t, models.TripStatusGoingToPickupLocation)
	require.Eventually(t, func() bool {
		if len(f.snapshot(t).Route) == 2 {
			return true
		}
		f.clk.Add(testPolling.DriverLocation)
		return false
	}, 2*time.Second, 5*time.Millisecond)

	// Assert
	assert.Contains(t, snap.ActiveTimers, string(ConcernDriverLocation))
	snap = f.snapshot(t)
	require.NotNil(t, snap.Position)
	assert.Equal(t, driverAt, *snap.Position)
	assert.Contains(t, snap.ActiveTimers, string(ConcernDriverLocation))
}

func TestTracker_DeniedLocationBlocksArrival(t *testing.T) {
	// Arrange
	f := newFixture(t, models.RoleDriver)
	f.serveTrip(deliveryTrip(models.TripStatusGoingToPickupLocation))
	f.backend.EXPECT().FetchDirections(gomock.Any(), gomock.Any(), testPickup).
		Return([]models.Location{testPickup}, nil).AnyTimes()
	ctx := context.Background()
	f.track(t, models.TripStatusGoingToPickupLocation)
	require.NoError(t, f.tracker.UpdatePosition(ctx, testPickup))
	require.True(t, f.snapshot(t).PrimaryAction.Enabled)

	// Act
	require.NoError(t, f.tracker.ReportLocationError(ctx, gateway.ErrPermissionDenied))
	denied := f.snapshot(t)
	blocked := f.tracker.Advance(ctx, models.ForwardInput{})
	require.NoError(t, f.tracker.UpdatePosition(ctx, testPickup))

	// Assert
	assert.True(t, denied.LocationDenied)
	require.NotNil(t, denied.PrimaryAction)
	assert.Equal(t, "Reached pickup location", denied.PrimaryAction.Label)
	assert.False(t, denied.PrimaryAction.Enabled)
	assert.ErrorIs(t, blocked, ErrActionBlocked)
	assert.True(t, f.snapshot(t).PrimaryAction.Enabled)
}
