package constants

// WebSocket event types
const (
	EventError    = "error"
	EventPing     = "ping"
	EventPong     = "pong"
	EventSnapshot = "snapshot"
)

// WebSocket error codes
const (
	ErrorInvalidFormat = "invalid_format"
	ErrorUnauthorized  = "unauthorized"
	ErrorInternalError = "internal_error"
)

// ErrorSeverity decides how much of an error a screen gets to see
type ErrorSeverity int

const (
	ErrorSeverityClient ErrorSeverity = iota
	ErrorSeverityServer
	ErrorSeveritySecurity
)
