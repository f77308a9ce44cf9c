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
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (destination reference data)
	PostgresURI string

	// Redis (browse-pool cache)
	RedisAddr      string
	RedisPassword  string
	BrowseCacheTTL time.Duration

	// Fleet API (upstream catalog + availability feeds)
	FleetAPIBaseURL string
	FleetAPIToken   string
	FleetAPITimeout time.Duration

	// Availability sampling
	SampleStrideDays  int
	BrowseHorizonDays int

	// Catalog snapshot reuse window
	CatalogMaxAge time.Duration

	// Search defaults for unparsable user input
	DefaultDuration int
	DefaultGuests   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:     getEnv("APP_VERSION", "1.0.0"),
		Port:           getEnv("PORT", "8080"),
		ReadTimeout:    time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:   time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "*")},

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "liveaboard"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=liveaboard port=5432"),

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		BrowseCacheTTL: time.Duration(getEnvAsInt("BROWSE_CACHE_TTL", 900)) * time.Second,

		FleetAPIBaseURL: getEnv("FLEET_API_BASE_URL", "https://fleet.example.com"),
		FleetAPIToken:   getEnv("FLEET_API_TOKEN", ""),
		FleetAPITimeout: time.Duration(getEnvAsInt("FLEET_API_TIMEOUT", 30)) * time.Second,

		SampleStrideDays:  getEnvAsInt("SAMPLE_STRIDE_DAYS", 7),
		BrowseHorizonDays: getEnvAsInt("BROWSE_HORIZON_DAYS", 90),

		CatalogMaxAge: time.Duration(getEnvAsInt("CATALOG_MAX_AGE", 300)) * time.Second,

		DefaultDuration: getEnvAsInt("DEFAULT_DURATION", 3),
		DefaultGuests:   getEnvAsInt("DEFAULT_GUESTS", 2),
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
