// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Telegram
	TelegramToken  string
	TelegramAPIURL string
	WebhookURL     string

	// Flight provider
	FlightAPIURL    string
	FlightAPIToken  string
	ProviderTimeout time.Duration

	// Lookup policy
	SearchRadiusKm   float64
	ScheduleTimezone string

	// Live message registry
	LiveSessionTTL time.Duration

	// MongoDB (optional durable registry)
	MongoURI string
	MongoDB  string

	// PostgreSQL (optional airline reference data)
	PostgresURI string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		WebhookURL:     getEnv("TELEGRAM_WEBHOOK_URL", ""),

		FlightAPIURL:    getEnv("FLIGHT_API_URL", "https://data-cloud.flightradar24.com"),
		FlightAPIToken:  getEnv("FLIGHT_API_TOKEN", ""),
		ProviderTimeout: time.Duration(getEnvAsInt("PROVIDER_TIMEOUT", 30)) * time.Second,

		SearchRadiusKm:   getEnvAsFloat("SEARCH_RADIUS_KM", 50),
		ScheduleTimezone: getEnv("SCHEDULE_TIMEZONE", "Asia/Tehran"),

		LiveSessionTTL: time.Duration(getEnvAsInt("LIVE_SESSION_TTL", 3600)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", ""),
		MongoDB:  getEnv("MONGO_DB", "planewatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
