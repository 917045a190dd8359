package gateway

import "errors"

var (
	// ErrPermissionDenied is returned when the user refused location access
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrLocationTimeout is returned when no position arrived in time
	ErrLocationTimeout = errors.New("location unavailable: timed out")
)
