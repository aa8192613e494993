package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	StorageBackend string // BackendSQLite or BackendMongo
	DatabasePath   string // sqlite backend
	MongoURI       string // mongo backend
	MongoDatabase  string
	JWTSecret      string
	TokenTTL       time.Duration
	ReaperSchedule string // standard cron expression
	AllowedOrigin  string
	LogLevel       string
}

// Load loads configuration from an optional .env file and the environment,
// applying defaults for everything but the JWT secret.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	backend := getEnv("STORAGE_BACKEND", BackendSQLite)
	if backend != BackendSQLite && backend != BackendMongo {
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}

	ttlStr := getEnv("TOKEN_TTL_HOURS", "24")
	ttlHours, err := strconv.Atoi(ttlStr)
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS %q", ttlStr)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:     port,
		StorageBackend: backend,
		DatabasePath:   getEnv("DATABASE_PATH", "./taskboard.db"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "taskboard"),
		JWTSecret:      secret,
		TokenTTL:       time.Duration(ttlHours) * time.Hour,
		ReaperSchedule: getEnv("REAPER_SCHEDULE", "*/15 * * * *"),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
