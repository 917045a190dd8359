package utils

import "github.com/piresc/triptracker/internal/pkg/models"

// DefaultProximityKm is the arrival radius used when none is configured
const DefaultProximityKm = 0.1

// IsNear reports whether position is strictly within thresholdKm of target.
// An unknown position is never near anything.
//
// It only gates client-side actions. Arrival that affects payment or OTP is
// confirmed by the backend.
func IsNear(position *models.Location, target models.Location, thresholdKm float64) bool {
	if position == nil {
		return false
	}
	return Distance(*position, target) < thresholdKm
}
