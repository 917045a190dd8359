package trips

import (
	"context"

	"github.com/piresc/triptracker/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/triptracker/services/trips BackendGW,LocationGW,EventGW

// BackendGW defines the remote trip API used by the tracker
type BackendGW interface {
	FetchTrip(ctx context.Context, tripID string) (*models.Trip, error)
	// FetchAcceptedDriver returns nil without error while no driver accepted
	FetchAcceptedDriver(ctx context.Context, tripID string) (*models.DriverInfo, error)
	FetchDriverLocation(ctx context.Context, tripID string) (*models.Location, error)
	FetchNearbyDrivers(ctx context.Context, tripID string, around models.Location) ([]models.DriverInfo, error)
	FetchDirections(ctx context.Context, origin, destination models.Location) ([]models.Location, error)

	UpdateTripStatus(ctx context.Context, update models.StatusUpdate) (*models.Trip, error)
	UpdateOwnLocation(ctx context.Context, location models.Location) error
	VerifyOTP(ctx context.Context, tripID, otp string) error
	CheckPayment(ctx context.Context, tripID string) (bool, error)
	ExtendRide(ctx context.Context, tripID string, extraHours float64) error
}

// LocationGW reads the device position
type LocationGW interface {
	CurrentPosition(ctx context.Context) (models.Location, error)
}

// EventGW publishes tracker events to other processes
type EventGW interface {
	PublishStatusChanged(ctx context.Context, event models.TripStatusEvent) error
	PublishReset(ctx context.Context, event models.TripResetEvent) error
}
