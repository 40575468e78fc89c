package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr           string
	Environment    string
	JWTSecret      string
	DatabaseURL    string
	FrontendDir    string
	SourceURL      string
	SourceUsername string
	SourcePassword string
	SourceTimeout  time.Duration
	LoginDelay     time.Duration
	MaxBodyBytes   int64
	MetricsEnabled bool
}

func Load() Config {
	return Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		Environment:    getEnv("APP_ENV", "development"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		FrontendDir:    getEnv("FRONTEND_DIR", "frontend/dist"),
		SourceURL:      getEnv("SOURCE_URL", "https://backend.jotish.in/backend_dev/gettabledata.php"),
		SourceUsername: getEnv("SOURCE_USERNAME", "test"),
		SourcePassword: getEnv("SOURCE_PASSWORD", "123456"),
		SourceTimeout:  getEnvDuration("SOURCE_TIMEOUT", 10*time.Second),
		LoginDelay:     getEnvDuration("LOGIN_DELAY", 800*time.Millisecond),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.SourceURL) == "" {
		return fmt.Errorf("SOURCE_URL is required")
	}
	if c.Environment == "production" && c.JWTSecret == "dev-secret" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.SourceTimeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT must be positive")
	}
	if c.LoginDelay < 0 {
		return fmt.Errorf("LOGIN_DELAY must not be negative")
	}
	return nil
}
