package trips

import (
	"context"

	"github.com/piresc/triptracker/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/triptracker/services/trips TrackerUC

// TrackerUC defines the operations screens can perform on the tracked trip
type TrackerUC interface {
	Track(ctx context.Context, tripID string) error
	Advance(ctx context.Context, input models.ForwardInput) error
	VerifyOTP(ctx context.Context, otp string) error
	RequestPayment(ctx context.Context, amount float64) error
	ExtendRide(ctx context.Context, extraHours float64) error
	Reset(ctx context.Context) error

	UpdatePosition(ctx context.Context, location models.Location) error
	ReportLocationError(ctx context.Context, err error) error
	SetForeground(ctx context.Context, foreground bool) error

	Snapshot(ctx context.Context) (models.Snapshot, error)
	Subscribe() (<-chan models.Snapshot, func())
}
