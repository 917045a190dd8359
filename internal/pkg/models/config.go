package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Backend  BackendConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	Tracking TrackingConfig
	Polling  PollingConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains the local HTTP surface configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// BackendConfig contains the remote trip API configuration
type BackendConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
}

// RedisConfig contains Redis connection configuration.
// An empty Host disables Redis persistence.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	TTL      time.Duration
}

// NATSConfig contains NATS connection configuration.
// An empty URL disables event publishing.
type NATSConfig struct {
	URL string
}

// JWTConfig contains authentication configuration for the local surface
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey   string
	AppName      string
	Enabled      bool
	LogsEnabled  bool
	LogsEndpoint string
	LogsAPIKey   string
	ForwardLogs  bool
}

// LoggerConfig contains zap logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}

// Role tells which side of the trip this client plays
type Role string

const (
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

// TrackingConfig contains trip tracking behaviour
type TrackingConfig struct {
	Role                Role
	PickupThresholdKm   float64
	DropoffThresholdKm  float64
	FailureBudget       int
	Simulate            bool
	ResumeOnStart       bool
	LocationTimeout     time.Duration
	RideEndingThreshold time.Duration
}

// PollingConfig contains one cadence per polling concern
type PollingConfig struct {
	TripStatus         time.Duration
	DriverLocation     time.Duration
	OwnLocation        time.Duration
	NearbyDrivers      time.Duration
	UserPaid           time.Duration
	RideCountdown      time.Duration
	BackgroundLocation time.Duration
}
