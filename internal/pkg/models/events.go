package models

import "time"

// TripStatusEvent is published whenever the tracked trip changes status
type TripStatusEvent struct {
	TripID     string     `json:"trip_id"`
	Role       Role       `json:"role"`
	From       TripStatus `json:"from,omitempty"`
	To         TripStatus `json:"to"`
	Code       int        `json:"code"`
	Local      bool       `json:"local"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// TripResetEvent is published when tracking of a trip ends
type TripResetEvent struct {
	TripID     string     `json:"trip_id"`
	Role       Role       `json:"role"`
	LastStatus TripStatus `json:"last_status,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
