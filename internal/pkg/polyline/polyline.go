// Package polyline keeps the unconsumed part of a route as a tracked vehicle
// moves along it.
package polyline

import (
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/utils"
)

// Trim keeps the points of route that are no farther from the destination
// (the last point) than position is. It does not project onto the path, so a
// vehicle that strays from the route may drop points early.
func Trim(route []models.Location, position models.Location) []models.Location {
	if len(route) == 0 {
		return route
	}

	destination := route[len(route)-1]
	remaining := utils.Distance(position, destination)

	kept := make([]models.Location, 0, len(route))
	for _, q := range route {
		if utils.Distance(q, destination) <= remaining {
			kept = append(kept, q)
		}
	}
	return kept
}

// Tracker holds the route of the active leg. It is not safe for concurrent
// use; the owner serializes access.
type Tracker struct {
	route []models.Location
}

// NewTracker creates a tracker for route
func NewTracker(route []models.Location) *Tracker {
	t := &Tracker{}
	t.Replace(route)
	return t
}

// Replace swaps in a freshly fetched route, e.g. on a leg change
func (t *Tracker) Replace(route []models.Location) {
	t.route = append([]models.Location(nil), route...)
}

// Advance trims the route for a new live position. The route is only
// replaced when points were consumed; the return value reports that.
func (t *Tracker) Advance(position models.Location) bool {
	trimmed := Trim(t.route, position)
	if len(trimmed) == len(t.route) {
		return false
	}
	t.route = trimmed
	return true
}

// Route returns a copy of the remaining points
func (t *Tracker) Route() []models.Location {
	return append([]models.Location(nil), t.route...)
}

// Len returns the number of remaining points
func (t *Tracker) Len() int {
	return len(t.route)
}

// Destination returns the last point of the route
func (t *Tracker) Destination() (models.Location, bool) {
	if len(t.route) == 0 {
		return models.Location{}, false
	}
	return t.route[len(t.route)-1], true
}

// Complete reports whether the leg has been consumed
func (t *Tracker) Complete() bool {
	return len(t.route) <= 1
}

// Clear drops the route
func (t *Tracker) Clear() {
	t.route = nil
}
