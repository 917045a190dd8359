package models

// Location is a WGS84 coordinate
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether the location was never set
func (l Location) IsZero() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// DriverInfo describes the driver assigned to, or proposed for, a trip
type DriverInfo struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	VehicleNumber   string   `json:"vehicle_number"`
	CurrentLocation Location `json:"current_location"`
}

// Region is a map viewport: a center and the span around it
type Region struct {
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	LatitudeDelta   float64 `json:"latitude_delta"`
	LongitudeDelta  float64 `json:"longitude_delta"`
}
