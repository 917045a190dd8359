package constants

// NATS Subjects
const (
	SubjectTripStatusChanged = "trip.status.changed"
	SubjectTripReset         = "trip.reset"
)
