package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/triptracker/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "trip-tracker")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "127.0.0.1")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9980)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 10)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 10)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 10)

	// Backend config
	configs.Backend.BaseURL = GetEnv("BACKEND_BASE_URL", "http://localhost:8080")
	configs.Backend.Token = GetEnv("BACKEND_TOKEN", "")
	configs.Backend.Timeout = GetEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second)
	configs.Backend.MaxRetries = GetEnvAsInt("BACKEND_MAX_RETRIES", 3)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)
	configs.Redis.TTL = GetEnvAsDuration("REDIS_TTL", 24*time.Hour)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 720)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false)
	configs.NewRelic.LogsEndpoint = GetEnv("NEW_RELIC_LOGS_ENDPOINT", "")
	configs.NewRelic.LogsAPIKey = GetEnv("NEW_RELIC_LOGS_API_KEY", "")
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "logs/tracker.log")
	configs.Logger.MaxSize = GetEnvAsInt64("LOG_MAX_SIZE", 100)
	configs.Logger.MaxAge = GetEnvAsInt("LOG_MAX_AGE", 7)
	configs.Logger.MaxBackups = GetEnvAsInt("LOG_MAX_BACKUPS", 3)
	configs.Logger.Compress = GetEnvAsBool("LOG_COMPRESS", true)
	configs.Logger.Type = GetEnv("LOG_TYPE", "stdout")

	// Tracking config
	configs.Tracking.Role = models.Role(GetEnv("TRACKING_ROLE", string(models.RoleCustomer)))
	configs.Tracking.PickupThresholdKm = GetEnvAsFloat("TRACKING_PICKUP_THRESHOLD_KM", 0.1)
	configs.Tracking.DropoffThresholdKm = GetEnvAsFloat("TRACKING_DROPOFF_THRESHOLD_KM", 0.1)
	configs.Tracking.FailureBudget = GetEnvAsInt("TRACKING_FAILURE_BUDGET", 5)
	configs.Tracking.Simulate = GetEnvAsBool("TRACKING_SIMULATE", false)
	configs.Tracking.ResumeOnStart = GetEnvAsBool("TRACKING_RESUME_ON_START", true)
	configs.Tracking.LocationTimeout = GetEnvAsDuration("TRACKING_LOCATION_TIMEOUT", 30*time.Second)
	configs.Tracking.RideEndingThreshold = GetEnvAsDuration("TRACKING_RIDE_ENDING_THRESHOLD", 10*time.Minute)

	// Polling config
	configs.Polling.TripStatus = GetEnvAsDuration("POLL_TRIP_STATUS", 3*time.Second)
	configs.Polling.DriverLocation = GetEnvAsDuration("POLL_DRIVER_LOCATION", time.Second)
	configs.Polling.OwnLocation = GetEnvAsDuration("POLL_OWN_LOCATION", 3*time.Second)
	configs.Polling.NearbyDrivers = GetEnvAsDuration("POLL_NEARBY_DRIVERS", 5*time.Second)
	configs.Polling.UserPaid = GetEnvAsDuration("POLL_USER_PAID", 3*time.Second)
	configs.Polling.RideCountdown = GetEnvAsDuration("POLL_RIDE_COUNTDOWN", time.Second)
	configs.Polling.BackgroundLocation = GetEnvAsDuration("POLL_BACKGROUND_LOCATION", 15*time.Second)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration accepts Go duration strings ("3s", "1m30s")
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Printf("Warning: Invalid duration value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
