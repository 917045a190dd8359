package constants

// Redis key formats
const (
	KeyActiveTrip   = "tracker:%s:active"   // Format: tracker:{role}:active
	KeyTripSnapshot = "tracker:snapshot:%s" // Format: tracker:snapshot:{trip_id}
	KeyTrackedGeo   = "tracker:positions"   // Geo set of last tracked positions by trip id
	KeyTrackedCell  = "tracker:cell:%s"     // Format: tracker:cell:{trip_id}
)
