package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Email         EmailConfig
	Booking       BookingConfig
	PasswordReset PasswordResetConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	FrontendURL string // base URL for links embedded in emails
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort string
	From     string
}

// =====================================================
// BOOKING CONFIGURATION
// =====================================================

type BookingConfig struct {
	AdminFee     int64         // fixed surcharge in currency minor units
	CancelCutoff time.Duration // minimum time before start a customer may cancel
}

// =====================================================
// PASSWORD RESET CONFIGURATION
// =====================================================

type PasswordResetConfig struct {
	TokenTTL        time.Duration // token lifetime
	RateLimitMax    int           // max requests per email within RateLimitWindow
	RateLimitWindow time.Duration
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Futsal Booking API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "futsal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessExpiry:  getEnvDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvDuration("JWT_REFRESH_EXPIRY", 72*time.Hour),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
			From:     getEnv("EMAIL_FROM", "noreply@futsal.dev"),
		},
		Booking: BookingConfig{
			AdminFee:     int64(getEnvInt("BOOKING_ADMIN_FEE", 5000)),
			CancelCutoff: getEnvDuration("BOOKING_CANCEL_CUTOFF", 2*time.Hour),
		},
		PasswordReset: PasswordResetConfig{
			TokenTTL:        getEnvDuration("RESET_TOKEN_TTL", time.Hour),
			RateLimitMax:    getEnvInt("RESET_RATE_LIMIT_MAX", 3),
			RateLimitWindow: getEnvDuration("RESET_RATE_LIMIT_WINDOW", 5*time.Minute),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for obvious misconfiguration
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.PasswordReset.RateLimitMax < 1 {
		return fmt.Errorf("RESET_RATE_LIMIT_MAX must be at least 1")
	}
	if c.Booking.AdminFee < 0 {
		return fmt.Errorf("BOOKING_ADMIN_FEE must not be negative")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
