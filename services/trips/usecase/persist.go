package usecase

import (
	"context"
	"sync"

	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/services/trips"
)

// persister writes to the repository off the loop. Writes run in order;
// snapshots coalesce so only the latest one is stored.
type persister struct {
	repo trips.TripRepo

	mu       sync.Mutex
	writes   []func(ctx context.Context) error
	snapshot *models.Snapshot
	position *positionWrite
	wake     chan struct{}
}

type positionWrite struct {
	tripID   string
	location models.Location
}

func newPersister(repo trips.TripRepo) *persister {
	return &persister{repo: repo, wake: make(chan struct{}, 1)}
}

func (p *persister) enqueue(write func(ctx context.Context) error) {
	if p.repo == nil {
		return
	}
	p.mu.Lock()
	p.writes = append(p.writes, write)
	p.mu.Unlock()
	p.signal()
}

// clear queues the removal of a trip and forgets pending writes about it
func (p *persister) clear(tripID string, write func(ctx context.Context) error) {
	if p.repo == nil {
		return
	}
	p.mu.Lock()
	if p.snapshot != nil && p.snapshot.TripID == tripID {
		p.snapshot = nil
	}
	if p.position != nil && p.position.tripID == tripID {
		p.position = nil
	}
	p.writes = append(p.writes, write)
	p.mu.Unlock()
	p.signal()
}

func (p *persister) saveSnapshot(snapshot models.Snapshot) {
	if p.repo == nil || snapshot.TripID == "" {
		return
	}
	p.mu.Lock()
	p.snapshot = &snapshot
	if snapshot.Position != nil {
		p.position = &positionWrite{tripID: snapshot.TripID, location: *snapshot.Position}
	}
	p.mu.Unlock()
	p.signal()
}

func (p *persister) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run(ctx context.Context) {
	if p.repo == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.wake:
			p.flush(ctx)
		}
	}
}

func (p *persister) flush(ctx context.Context) {
	p.mu.Lock()
	writes, snapshot, position := p.writes, p.snapshot, p.position
	p.writes, p.snapshot, p.position = nil, nil, nil
	p.mu.Unlock()

	for _, write := range writes {
		if err := write(ctx); err != nil {
			logger.Warn("Failed to persist trip state", logger.Err(err))
		}
	}
	if snapshot != nil {
		if err := p.repo.SaveSnapshot(ctx, *snapshot); err != nil {
			logger.Warn("Failed to persist snapshot",
				logger.String("trip_id", snapshot.TripID),
				logger.Err(err))
		}
	}
	if position != nil {
		if err := p.repo.SavePosition(ctx, position.tripID, position.location); err != nil {
			logger.Warn("Failed to persist position",
				logger.String("trip_id", position.tripID),
				logger.Err(err))
		}
	}
}
