package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values
type Config struct {
	Port              string
	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string
	RedisAddr         string
	LogLevel          string
	UndoEnabled       bool
	SpatialCellSize   float64
}

// New creates a new configuration from environment variables. A .env file in
// the working directory is honored when present.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		SupabaseURL:       getEnv("SUPABASE_URL", ""),
		SupabaseKey:       getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		UndoEnabled:       getEnvBool("UNDO_ENABLED", true),
		SpatialCellSize:   getEnvFloat("SPATIAL_CELL_SIZE", 200),
	}
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
