package models

import (
	"time"
)

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}

// FormatTime formats a time.Time according to RFC3339
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTime parses a string in RFC3339 format to time.Time
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// RemainingTime is the time left on a car-rent booking
type RemainingTime struct {
	Hours   int           `json:"hours"`
	Minutes int           `json:"minutes"`
	Seconds int           `json:"seconds"`
	Total   time.Duration `json:"total"`
}

// Expired reports whether the booked time has run out
func (r RemainingTime) Expired() bool {
	return r.Total <= 0
}

// RemainingRideTime computes (createdAt + totalHours) - now. Total keeps the
// sign; the hour/minute/second split is clamped at zero.
func RemainingRideTime(createdAt time.Time, totalHours float64, now time.Time) RemainingTime {
	end := createdAt.Add(time.Duration(totalHours * float64(time.Hour)))
	total := end.Sub(now)

	secs := int64(total / time.Second)
	if secs < 0 {
		secs = 0
	}
	return RemainingTime{
		Hours:   int(secs / 3600),
		Minutes: int((secs % 3600) / 60),
		Seconds: int(secs % 60),
		Total:   total,
	}
}
