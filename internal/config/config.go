package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis (optional; empty disables cross-instance event fan-out)
	RedisURL string

	// Seeding
	SeedUserName string

	// Rate limiting (requests per minute per IP on message posting)
	MessageRateLimit int

	// Logging
	LogLevel string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "development"),
		DatabaseURL:      mustGetEnv("DATABASE_URL"),
		RedisURL:         getEnvOrDefault("REDIS_URL", ""),
		SeedUserName:     getEnvOrDefault("SEED_USER_NAME", "Alice"),
		MessageRateLimit: getEnvAsIntOrDefault("MESSAGE_RATE_LIMIT", 60),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
