package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	Env          string // "development" or "production"
	ClientOrigin string

	MongoURI string
	MongoDB  string

	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string
	BcryptCost int

	// Rate limits for the unauthenticated auth endpoints, per client IP.
	SignupLimit  int
	SignupWindow time.Duration
	SigninLimit  int
	SigninWindow time.Duration
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "12"))
	if err != nil || cost < 10 {
		return nil, fmt.Errorf("BCRYPT_COST must be an integer >= 10")
	}

	return &Config{
		ServerPort:   port,
		Env:          getEnv("APP_ENV", "development"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "skillswap"),
		JWTSecret:    secret,
		TokenTTL:     7 * 24 * time.Hour,
		CookieName:   getEnv("COOKIE_NAME", "skillswap_token"),
		BcryptCost:   cost,
		SignupLimit:  10,
		SignupWindow: time.Hour,
		SigninLimit:  20,
		SigninWindow: 15 * time.Minute,
	}, nil
}

// IsProduction reports whether the app runs with production hardening
// (secure cookies) enabled.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
