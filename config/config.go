package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all process configuration. It is built once in main and passed
// by value to the components that need it; business logic never reads the
// environment directly.
type Config struct {
	DatabaseURL string
	RedisURL    string

	// JWTSecret verifies session tokens minted by the identity provider.
	JWTSecret string

	// CMSBaseURL is the read-only marketing CMS endpoint.
	CMSBaseURL string

	// CMSWebhookSecretHash is a bcrypt hash of the bearer credential the CMS
	// presents on its content-change webhook.
	CMSWebhookSecretHash string

	// SiteBaseURL, when set, enables HTTP revalidation pings against the
	// rendering frontend in addition to the Redis announcement.
	SiteBaseURL         string
	RevalidateSecret    string
	DefaultContactEmail string
	DefaultContactPhone string

	Port        string
	Env         string
	MaxPoolSize int
}

// Load reads configuration from environment variables.
func Load() Config {
	cfg := Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		RedisURL:             os.Getenv("REDIS_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		CMSBaseURL:           os.Getenv("CMS_BASE_URL"),
		CMSWebhookSecretHash: os.Getenv("CMS_WEBHOOK_SECRET_HASH"),
		SiteBaseURL:          os.Getenv("SITE_BASE_URL"),
		RevalidateSecret:     os.Getenv("REVALIDATE_SECRET"),
		DefaultContactEmail:  getEnvWithDefault("CONTACT_EMAIL", "info@propflow.ar"),
		DefaultContactPhone:  getEnvWithDefault("CONTACT_PHONE", ""),
		Port:                 getEnvWithDefault("PORT", "8080"),
		Env:                  getEnvWithDefault("ENV", "development"),
		MaxPoolSize:          getEnvIntWithDefault("DB_MAX_POOL_SIZE", 10),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
		log.Println("WARNING: Using default JWT_SECRET; set a real secret in production")
	}

	return cfg
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
