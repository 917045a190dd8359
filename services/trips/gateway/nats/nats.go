package gateway_nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/triptracker/internal/pkg/constants"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/models"
	natspkg "github.com/piresc/triptracker/internal/pkg/nats"
)

// NATSGateway publishes tracker events. It implements trips.EventGW.
type NATSGateway struct {
	client *natspkg.Client
}

// NewNATSGateway creates a new NATS gateway
func NewNATSGateway(client *natspkg.Client) *NATSGateway {
	return &NATSGateway{client: client}
}

// PublishStatusChanged publishes a trip status change
func (g *NATSGateway) PublishStatusChanged(ctx context.Context, event models.TripStatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}
	if err := g.client.Publish(constants.SubjectTripStatusChanged, data); err != nil {
		logger.WarnCtx(ctx, "Failed to publish status event",
			logger.String("trip_id", event.TripID),
			logger.String("to", string(event.To)),
			logger.Err(err))
		return err
	}
	return nil
}

// PublishReset publishes the end of tracking for a trip
func (g *NATSGateway) PublishReset(ctx context.Context, event models.TripResetEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reset event: %w", err)
	}
	if err := g.client.Publish(constants.SubjectTripReset, data); err != nil {
		logger.WarnCtx(ctx, "Failed to publish reset event",
			logger.String("trip_id", event.TripID),
			logger.Err(err))
		return err
	}
	return nil
}

// NoopGateway drops events; used when NATS is not configured
type NoopGateway struct{}

// PublishStatusChanged implements trips.EventGW
func (NoopGateway) PublishStatusChanged(context.Context, models.TripStatusEvent) error { return nil }

// PublishReset implements trips.EventGW
func (NoopGateway) PublishReset(context.Context, models.TripResetEvent) error { return nil }
