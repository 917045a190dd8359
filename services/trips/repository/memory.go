package repository

import (
	"context"
	"sync"

	"github.com/piresc/triptracker/internal/pkg/models"
)

// MemoryRepo implements trips.TripRepo in process memory. Used when Redis
// is not configured; nothing survives a restart.
type MemoryRepo struct {
	mu        sync.RWMutex
	active    map[models.Role]string
	snapshots map[string]models.Snapshot
	positions map[string]models.Location
}

// NewMemoryRepo creates an empty in-memory repository
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		active:    make(map[models.Role]string),
		snapshots: make(map[string]models.Snapshot),
		positions: make(map[string]models.Location),
	}
}

func (m *MemoryRepo) SaveActive(_ context.Context, role models.Role, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[role] = tripID
	return nil
}

func (m *MemoryRepo) LoadActive(_ context.Context, role models.Role) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active[role], nil
}

func (m *MemoryRepo) SaveSnapshot(_ context.Context, snapshot models.Snapshot) error {
	if snapshot.TripID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapshot.TripID] = snapshot
	return nil
}

func (m *MemoryRepo) LoadSnapshot(_ context.Context, tripID string) (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snapshots[tripID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryRepo) SavePosition(_ context.Context, tripID string, location models.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[tripID] = location
	return nil
}

// Position returns the last saved position of a trip
func (m *MemoryRepo) Position(tripID string) (models.Location, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.positions[tripID]
	return loc, ok
}

func (m *MemoryRepo) Clear(_ context.Context, role models.Role, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, role)
	delete(m.snapshots, tripID)
	delete(m.positions, tripID)
	return nil
}
