package gateway_location

import (
	"context"
	"errors"
	"sync"

	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/models"
)

// ErrNoRoute is returned by a simulator with neither a route nor a fallback
var ErrNoRoute = errors.New("simulator has no route to follow")

// Simulator is a development location source that walks the current route
// one point per read. Until a route is set it defers to a fallback source.
type Simulator struct {
	mu       sync.Mutex
	route    []models.Location
	next     int
	fallback *Feed
}

// NewSimulator creates a simulator; fallback may be nil
func NewSimulator(fallback *Feed) *Simulator {
	return &Simulator{fallback: fallback}
}

// FollowRoute makes the simulator walk route from its first point
func (s *Simulator) FollowRoute(route []models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = append([]models.Location(nil), route...)
	s.next = 0
	logger.Debug("Simulator following route", logger.Int("points", len(route)))
}

// CurrentPosition returns the next point of the route, staying on the last one
func (s *Simulator) CurrentPosition(ctx context.Context) (models.Location, error) {
	s.mu.Lock()
	if len(s.route) > 0 {
		loc := s.route[s.next]
		if s.next < len(s.route)-1 {
			s.next++
		}
		s.mu.Unlock()
		return loc, nil
	}
	s.mu.Unlock()

	if s.fallback == nil {
		return models.Location{}, ErrNoRoute
	}
	return s.fallback.CurrentPosition(ctx)
}
