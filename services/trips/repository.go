package trips

import (
	"context"

	"github.com/piresc/triptracker/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/triptracker/services/trips TripRepo

// TripRepo persists what is needed to resume tracking after a restart
type TripRepo interface {
	SaveActive(ctx context.Context, role models.Role, tripID string) error
	// LoadActive returns an empty id when nothing is being tracked
	LoadActive(ctx context.Context, role models.Role) (string, error)
	SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error
	LoadSnapshot(ctx context.Context, tripID string) (*models.Snapshot, error)
	SavePosition(ctx context.Context, tripID string, location models.Location) error
	Clear(ctx context.Context, role models.Role, tripID string) error
}
