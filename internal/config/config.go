package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime knob, loaded once at startup and passed down by
// reference. Values come from environment variables with sane defaults.
type Config struct {
	Env       string
	Port      string
	APIPrefix string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret    string
	JWTExpiresIn string // duration string, e.g. "24h"

	BcryptCost int

	DefaultPageLimit  int
	MaxPageLimit      int
	LowStockThreshold int
	LowStockLimit     int

	FrontendURL     string
	RateLimitWindow time.Duration
	RateLimitMax    int
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment via viper.
func Load() *Config {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("API_PREFIX", "/api")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "gudang_tekstil")

	viper.SetDefault("JWT_SECRET", "change-me-in-production-min-32-chars!!")
	viper.SetDefault("JWT_EXPIRES_IN", "24h")

	viper.SetDefault("BCRYPT_COST", 12)

	viper.SetDefault("DEFAULT_PAGE_LIMIT", 10)
	viper.SetDefault("MAX_PAGE_LIMIT", 100)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("LOW_STOCK_LIMIT", 20)

	viper.SetDefault("FRONTEND_URL", "http://localhost:3001")
	viper.SetDefault("RATE_LIMIT_WINDOW", "15m")
	viper.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	viper.AutomaticEnv()

	return &Config{
		Env:       viper.GetString("APP_ENV"),
		Port:      viper.GetString("PORT"),
		APIPrefix: viper.GetString("API_PREFIX"),

		DatabaseURL: viper.GetString("DATABASE_URL"),
		DBHost:      viper.GetString("DB_HOST"),
		DBPort:      viper.GetString("DB_PORT"),
		DBUser:      viper.GetString("DB_USER"),
		DBPassword:  viper.GetString("DB_PASSWORD"),
		DBName:      viper.GetString("DB_NAME"),

		JWTSecret:    viper.GetString("JWT_SECRET"),
		JWTExpiresIn: viper.GetString("JWT_EXPIRES_IN"),

		BcryptCost: viper.GetInt("BCRYPT_COST"),

		DefaultPageLimit:  viper.GetInt("DEFAULT_PAGE_LIMIT"),
		MaxPageLimit:      viper.GetInt("MAX_PAGE_LIMIT"),
		LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
		LowStockLimit:     viper.GetInt("LOW_STOCK_LIMIT"),

		FrontendURL:     viper.GetString("FRONTEND_URL"),
		RateLimitWindow: viper.GetDuration("RATE_LIMIT_WINDOW"),
		RateLimitMax:    viper.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
	}
}

// IsProduction reports whether the app runs with production error masking.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL parses JWT_EXPIRES_IN, falling back to 24 hours on a bad value.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiresIn)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// DSN builds the Postgres connection string unless DATABASE_URL overrides it.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
