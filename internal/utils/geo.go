package utils

import (
	"errors"
	"math"

	"github.com/piresc/triptracker/internal/pkg/models"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula
	EarthRadiusKm = 6371.0

	// RegionPadding inflates a fitted region so markers are not drawn on the edge
	RegionPadding = 1.4

	// DefaultRegionRadiusMiles is the span shown around a single point
	DefaultRegionRadiusMiles = 5.0

	metersPerMile             = 1609.34
	metersPerDegreeOfLatitude = 111.32 * 1000

	// DefaultCurvePoints is the sample count used for curved route previews
	DefaultCurvePoints = 100
)

// ErrEmptyRegion is returned when a region is requested for no usable points
var ErrEmptyRegion = errors.New("cannot compute region: no points")

// HaversineKm calculates the great-circle distance between two points in kilometers
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := toRadians(lat1)
	rLat2 := toRadians(lat2)
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Distance is HaversineKm for two locations
func Distance(a, b models.Location) float64 {
	return HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// BoundingRegion fits a map region around the given points. Nil entries are
// skipped. A single usable point yields a fixed span around it.
func BoundingRegion(points []*models.Location) (models.Region, error) {
	usable := make([]models.Location, 0, len(points))
	for _, p := range points {
		if p != nil {
			usable = append(usable, *p)
		}
	}

	if len(usable) == 0 {
		return models.Region{}, ErrEmptyRegion
	}
	if len(usable) == 1 {
		return RadiusToDelta(usable[0], DefaultRegionRadiusMiles), nil
	}

	minLat, maxLat := usable[0].Latitude, usable[0].Latitude
	minLon, maxLon := usable[0].Longitude, usable[0].Longitude
	for _, p := range usable[1:] {
		minLat = math.Min(minLat, p.Latitude)
		maxLat = math.Max(maxLat, p.Latitude)
		minLon = math.Min(minLon, p.Longitude)
		maxLon = math.Max(maxLon, p.Longitude)
	}

	return models.Region{
		CenterLatitude:  (minLat + maxLat) / 2,
		CenterLongitude: (minLon + maxLon) / 2,
		LatitudeDelta:   (maxLat - minLat) * RegionPadding,
		LongitudeDelta:  (maxLon - minLon) * RegionPadding,
	}, nil
}

// RadiusToDelta returns a region centered on center that shows roughly
// radiusMiles around it
func RadiusToDelta(center models.Location, radiusMiles float64) models.Region {
	delta := (radiusMiles * metersPerMile) /
		(metersPerDegreeOfLatitude * math.Cos(toRadians(center.Latitude)))

	return models.Region{
		CenterLatitude:  center.Latitude,
		CenterLongitude: center.Longitude,
		LatitudeDelta:   delta,
		LongitudeDelta:  delta,
	}
}

// QuadraticBezier samples numPoints points of a curved arc from p1 to p2. The
// control point sits on the perpendicular bisector of p1-p2, one segment
// length away from the midpoint.
func QuadraticBezier(p1, p2 models.Location, numPoints int) []models.Location {
	if numPoints <= 0 {
		return nil
	}
	if numPoints == 1 {
		return []models.Location{p1}
	}

	control := bezierControlPoint(p1, p2)
	points := make([]models.Location, numPoints)
	for i := 0; i < numPoints; i++ {
		t := float64(i) / float64(numPoints-1)
		u := 1 - t
		points[i] = models.Location{
			Latitude:  u*u*p1.Latitude + 2*u*t*control.Latitude + t*t*p2.Latitude,
			Longitude: u*u*p1.Longitude + 2*u*t*control.Longitude + t*t*p2.Longitude,
		}
	}
	return points
}

func bezierControlPoint(p1, p2 models.Location) models.Location {
	dx := p2.Latitude - p1.Latitude
	dy := p2.Longitude - p1.Longitude
	mid := models.Location{
		Latitude:  (p1.Latitude + p2.Latitude) / 2,
		Longitude: (p1.Longitude + p2.Longitude) / 2,
	}
	if dx == 0 && dy == 0 {
		return mid
	}
	// (dy, -dx) is perpendicular to the segment and already has its length
	return models.Location{
		Latitude:  mid.Latitude + dy,
		Longitude: mid.Longitude - dx,
	}
}

// Heading returns the initial bearing from one point to another in degrees,
// normalized to [0, 360)
func Heading(from, to models.Location) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

// DedupePoints drops repeated points, keeping the first occurrence of each
func DedupePoints(points []models.Location) []models.Location {
	if len(points) == 0 {
		return points
	}
	seen := make(map[models.Location]struct{}, len(points))
	out := make([]models.Location, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
