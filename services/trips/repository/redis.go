package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/triptracker/internal/pkg/constants"
	"github.com/piresc/triptracker/internal/pkg/database"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/utils"
)

// DefaultTTL bounds how long an abandoned trip is remembered
const DefaultTTL = 24 * time.Hour

// TripRepo implements trips.TripRepo on Redis
type TripRepo struct {
	redis *database.RedisClient
	ttl   time.Duration
}

// NewTripRepo creates a Redis backed trip repository
func NewTripRepo(redisClient *database.RedisClient, ttl time.Duration) *TripRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TripRepo{redis: redisClient, ttl: ttl}
}

// SaveActive remembers which trip the given role is tracking
func (r *TripRepo) SaveActive(ctx context.Context, role models.Role, tripID string) error {
	key := fmt.Sprintf(constants.KeyActiveTrip, role)
	if err := r.redis.Set(ctx, key, tripID, r.ttl); err != nil {
		return fmt.Errorf("failed to save active trip: %w", err)
	}
	return nil
}

// LoadActive returns the tracked trip id, or "" when there is none
func (r *TripRepo) LoadActive(ctx context.Context, role models.Role) (string, error) {
	key := fmt.Sprintf(constants.KeyActiveTrip, role)
	tripID, err := r.redis.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load active trip: %w", err)
	}
	return tripID, nil
}

// SaveSnapshot stores the latest published snapshot of a trip
func (r *TripRepo) SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	if snapshot.TripID == "" {
		return nil
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	key := fmt.Sprintf(constants.KeyTripSnapshot, snapshot.TripID)
	if err := r.redis.Set(ctx, key, string(data), r.ttl); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot of a trip, or nil
func (r *TripRepo) LoadSnapshot(ctx context.Context, tripID string) (*models.Snapshot, error) {
	key := fmt.Sprintf(constants.KeyTripSnapshot, tripID)
	data, err := r.redis.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var snapshot models.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// SavePosition records the last tracked position of a trip and its geohash cell
func (r *TripRepo) SavePosition(ctx context.Context, tripID string, location models.Location) error {
	if err := r.redis.GeoAdd(ctx, constants.KeyTrackedGeo, location.Longitude, location.Latitude, tripID); err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	cellKey := fmt.Sprintf(constants.KeyTrackedCell, tripID)
	if err := r.redis.Set(ctx, cellKey, utils.EncodeLocation(location, utils.CellPrecision), r.ttl); err != nil {
		return fmt.Errorf("failed to save position cell: %w", err)
	}
	return nil
}

// Clear forgets everything stored about a trip
func (r *TripRepo) Clear(ctx context.Context, role models.Role, tripID string) error {
	keys := []string{fmt.Sprintf(constants.KeyActiveTrip, role)}
	if tripID != "" {
		keys = append(keys,
			fmt.Sprintf(constants.KeyTripSnapshot, tripID),
			fmt.Sprintf(constants.KeyTrackedCell, tripID))
	}
	if err := r.redis.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear trip: %w", err)
	}
	if tripID != "" {
		if err := r.redis.Client.ZRem(ctx, constants.KeyTrackedGeo, tripID).Err(); err != nil {
			return fmt.Errorf("failed to clear position: %w", err)
		}
	}
	return nil
}
