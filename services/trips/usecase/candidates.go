package usecase

import (
	"github.com/dhconnelly/rtreego"
	"github.com/piresc/triptracker/internal/pkg/models"
)

const candidateTolerance = 0.00001

// candidate wraps a driver so it can live in an r-tree
type candidate struct {
	driver models.DriverInfo
	point  rtreego.Point
}

func (c *candidate) Bounds() rtreego.Rect {
	return c.point.ToRect(candidateTolerance)
}

// nearestCandidate returns the driver closest to around. Distance is
// measured in degrees, which ranks neighbours correctly at city scale.
func nearestCandidate(drivers []models.DriverInfo, around models.Location) *models.DriverInfo {
	if len(drivers) == 0 {
		return nil
	}
	tree := rtreego.NewTree(2, 25, 50)
	for _, d := range drivers {
		loc := d.CurrentLocation
		tree.Insert(&candidate{driver: d, point: rtreego.Point{loc.Latitude, loc.Longitude}})
	}

	nearest, ok := tree.NearestNeighbor(rtreego.Point{around.Latitude, around.Longitude}).(*candidate)
	if !ok || nearest == nil {
		return nil
	}
	d := nearest.driver
	return &d
}
