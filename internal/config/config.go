package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8000"
	defaultAppEnv          = "development"
	defaultLogLevel        = "info"
	defaultCORSOrigins     = "http://localhost:3000,http://localhost:5173"
	defaultCartSessionTTL  = 2 * time.Hour
	defaultCartMaxSessions = 10000
)

var ErrMissingEnv = errors.New("missing required environment variables")

// StorageConfig points at an S3-compatible bucket (Cloudflare R2 in
// production).
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// Enabled reports whether uploads can be served.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	JWTSecret       string
	LogLevel        string
	CORSOrigins     []string
	CatalogPath     string
	CartSessionTTL  time.Duration
	CartMaxSessions int
	Storage         StorageConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads a .env file outside production and then the process
// environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", defaultAppEnv),
		Port:        getEnv("PORT", defaultPort),
		DatabaseURL: required("DATABASE_URL"),
		JWTSecret:   required("JWT_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", defaultCORSOrigins)),
		CatalogPath: os.Getenv("CATALOG_PATH"),
		Storage: StorageConfig{
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			Bucket:        os.Getenv("S3_BUCKET"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	ttl := defaultCartSessionTTL
	if raw := os.Getenv("CART_SESSION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CART_SESSION_TTL %q: %w", raw, err)
		}
		ttl = parsed
	}
	cfg.CartSessionTTL = ttl

	cfg.CartMaxSessions = defaultCartMaxSessions
	if raw := os.Getenv("CART_MAX_SESSIONS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CART_MAX_SESSIONS %q: %w", raw, err)
		}
		cfg.CartMaxSessions = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
