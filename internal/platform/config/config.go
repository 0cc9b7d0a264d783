package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	Environment           string
	StoreDriver           string
	DatabaseURL           string
	DataDir               string
	StorageDir            string
	PublicBaseURL         string
	JWTSecret             string
	Locales               []string
	SeedAdminEmail        string
	SeedAdminPassword     string
	SeedEncargadoEmail    string
	SeedEncargadoPassword string
	SeedEncargadoLocale   string
	RunMigrations         bool
	RunSeed               bool
	MaxBodyBytes          int64
	RateLimitPerMinute    int
	MetricsEnabled        bool
}

const (
	DriverPostgres = "postgres"
	DriverJSONFile = "jsonfile"
)

func Load() Config {
	// Best effort, matches how the express backend picked up its .env.
	_ = godotenv.Load()

	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		Environment:           getEnv("APP_ENV", "development"),
		StoreDriver:           getEnv("STORE_DRIVER", DriverPostgres),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		DataDir:               getEnv("DATA_DIR", "data"),
		StorageDir:            getEnv("STORAGE_DIR", "storage"),
		PublicBaseURL:         getEnv("PUBLIC_BASE_URL", "http://localhost:8080/files"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		Locales:               getEnvList("LOCALES", []string{"Brutal Soul", "Stella Brutal"}),
		SeedAdminEmail:        getEnv("SEED_ADMIN_EMAIL", "admin@demo.com"),
		SeedAdminPassword:     getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedEncargadoEmail:    getEnv("SEED_ENCARGADO_EMAIL", ""),
		SeedEncargadoPassword: getEnv("SEED_ENCARGADO_PASSWORD", ""),
		SeedEncargadoLocale:   getEnv("SEED_ENCARGADO_LOCALE", "Brutal Soul"),
		RunMigrations:         getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:               getEnvBool("RUN_SEED", true),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:        getEnvBool("METRICS_ENABLED", true),
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

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c Config) HasLocale(locale string) bool {
	for _, known := range c.Locales {
		if strings.EqualFold(known, locale) {
			return true
		}
	}
	return false
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	case DriverJSONFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return fmt.Errorf("DATA_DIR is required when STORE_DRIVER is jsonfile")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if len(c.Locales) == 0 {
		return fmt.Errorf("LOCALES must name at least one location")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
