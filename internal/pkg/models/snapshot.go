package models

import "time"

// Action is a button the trip screen can show
type Action struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

// ForwardInput carries the optional payload of the driver's forward action
type ForwardInput struct {
	Amount float64 `json:"amount,omitempty"`
}

// Snapshot is an immutable view of the tracker state published to screens
type Snapshot struct {
	Version uint64 `json:"version"`
	Role    Role   `json:"role"`

	TripID     string     `json:"trip_id,omitempty"`
	Status     TripStatus `json:"status"`
	StatusCode int        `json:"status_code"`
	Loading    bool       `json:"loading"`
	Trip       *Trip      `json:"trip,omitempty"`

	Driver           *DriverInfo  `json:"driver,omitempty"`
	Candidates       []DriverInfo `json:"candidates,omitempty"`
	NearestCandidate *DriverInfo  `json:"nearest_candidate,omitempty"`

	Route        []Location `json:"route,omitempty"`
	LegComplete  bool       `json:"leg_complete"`
	Position     *Location  `json:"position,omitempty"`
	PositionCell string     `json:"position_cell,omitempty"`
	Heading      float64    `json:"heading"`
	Region       *Region    `json:"region,omitempty"`

	Foreground     bool `json:"foreground"`
	LocationDenied bool `json:"location_denied"`
	UserPaid       bool `json:"user_paid"`
	OTPVerified    bool `json:"otp_verified"`

	RemainingTime   *RemainingTime `json:"remaining_time,omitempty"`
	RideEndingSoon  bool           `json:"ride_ending_soon"`
	RideShouldEnd   bool           `json:"ride_should_end"`
	PrimaryAction   *Action        `json:"primary_action,omitempty"`
	SecondaryAction *Action        `json:"secondary_action,omitempty"`

	Banner       string    `json:"banner,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
	ActiveTimers []string  `json:"active_timers,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
