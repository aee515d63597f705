package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// NATS
	NatsURL string

	// Server
	Port           string
	Environment    string
	AllowedOrigins []string

	// Pipeline provider
	AbacusAPIKey           string
	AbacusBaseURL          string
	AbacusUseFixtures      bool
	ManufacturerPipelineID string
	ProductPipelineID      string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "20"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))

	return &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "catalog_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis; empty disables caching
		RedisURL: getEnv("REDIS_URL", ""),

		// NATS; empty disables event publishing
		NatsURL: getEnv("NATS_URL", ""),

		// Server
		Port:           getEnv("PORT", "8081"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitEnv("ALLOWED_ORIGINS"),

		// Pipeline provider. The placeholder default keeps the dashboard
		// functional on fixture data until a real key is configured.
		AbacusAPIKey:           getEnv("ABACUS_API_KEY", ""),
		AbacusBaseURL:          getEnv("ABACUS_BASE_URL", "https://api.abacus.ai/v0"),
		AbacusUseFixtures:      getEnvBool("ABACUS_USE_FIXTURES", true),
		ManufacturerPipelineID: getEnv("MANUFACTURER_PIPELINE_ID", "fd507c760"),
		ProductPipelineID:      getEnv("PRODUCT_PIPELINE_ID", "1398624bb0"),

		// Pagination
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

// HasAbacusKey reports whether a usable provider credential is configured.
// Placeholder values from env templates count as unconfigured.
func (c *Config) HasAbacusKey() bool {
	switch c.AbacusAPIKey {
	case "", "your-api-key", "your-api-key-here", "changeme":
		return false
	}
	return true
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
