package utils

import (
	"github.com/mmcloughlin/geohash"
	"github.com/piresc/triptracker/internal/pkg/models"
)

// CellPrecision gives roughly 150m cells, enough to tell which block a vehicle is on
const CellPrecision uint = 7

// EncodeLocation converts a location to a geohash string
func EncodeLocation(location models.Location, precision uint) string {
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, precision)
}

// DecodeGeohash returns the center of a geohash cell
func DecodeGeohash(hash string) models.Location {
	lat, lng := geohash.Decode(hash)
	return models.Location{Latitude: lat, Longitude: lng}
}
