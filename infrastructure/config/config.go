package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Supabase configuration
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseJWTSecret  string

	// Cache configuration, one block per volatility class
	StaticCacheSize int
	StaticCacheTTL  time.Duration

	DynamicCacheSize int
	DynamicCacheTTL  time.Duration

	UserCacheSize int
	UserCacheTTL  time.Duration

	// Rate limiting for write endpoints
	WriteBurst      int
	WriteRefillRate time.Duration

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:  getEnv("SUPABASE_JWT_SECRET", ""),

		// Reference data changes rarely; a long TTL keeps the admin
		// views snappy while invalidation handles the writes.
		StaticCacheSize: getEnvInt("STATIC_CACHE_SIZE", 100),
		StaticCacheTTL:  getEnvDuration("STATIC_CACHE_TTL", time.Hour),

		DynamicCacheSize: getEnvInt("DYNAMIC_CACHE_SIZE", 200),
		DynamicCacheTTL:  getEnvDuration("DYNAMIC_CACHE_TTL", 5*time.Minute),

		UserCacheSize: getEnvInt("USER_CACHE_SIZE", 500),
		UserCacheTTL:  getEnvDuration("USER_CACHE_TTL", 15*time.Minute),

		WriteBurst:      getEnvInt("WRITE_BURST", 20),
		WriteRefillRate: getEnvDuration("WRITE_REFILL_RATE", 3*time.Second),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present.
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.IsProduction() && c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required in production")
	}
	if c.StaticCacheSize < 1 || c.DynamicCacheSize < 1 || c.UserCacheSize < 1 {
		return fmt.Errorf("cache sizes must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
