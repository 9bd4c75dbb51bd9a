package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Snapshot     SnapshotConfig
	ImageService ImageServiceConfig
	Alerts       AlertConfig
	Jobs         JobsConfig
	App          AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// DatabaseConfig describes the postgres database holding character sheets.
// DSN wins over the individual fields; with neither set sheets stay in memory.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SnapshotConfig struct {
	Backend   string // memory, redis, sql
	SQLDriver string // sqlite, postgres, mysql
	SQLDSN    string
}

type ImageServiceConfig struct {
	URL       string
	Path      string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables pacing
	Burst     int
}

type AlertConfig struct {
	SuppressTransport bool
}

type JobsConfig struct {
	MetricsReportCron string

	// SessionEvictCron drops in-memory session state idle for SessionIdleTTL.
	SessionEvictCron string
	SessionIdleTTL   time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "charforge"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Snapshot: SnapshotConfig{
			Backend:   strings.ToLower(getEnv("SNAPSHOT_BACKEND", "memory")),
			SQLDriver: strings.ToLower(getEnv("SNAPSHOT_SQL_DRIVER", "sqlite")),
			SQLDSN:    getEnv("SNAPSHOT_SQL_DSN", "charforge.db"),
		},
		ImageService: ImageServiceConfig{
			URL:       strings.TrimRight(getEnv("IMAGE_SERVICE_URL", "http://localhost:5000"), "/"),
			Path:      getEnv("IMAGE_SERVICE_PATH", "/api/generate-character"),
			Timeout:   time.Duration(getEnvAsInt("IMAGE_SERVICE_TIMEOUT_SECONDS", 120)) * time.Second,
			RateLimit: getEnvAsFloat("IMAGE_SERVICE_RATE_LIMIT", 0),
			Burst:     getEnvAsInt("IMAGE_SERVICE_BURST", 1),
		},
		Alerts: AlertConfig{
			SuppressTransport: getEnvAsBool("ALERT_SUPPRESS_TRANSPORT", true),
		},
		Jobs: JobsConfig{
			MetricsReportCron: getEnv("METRICS_REPORT_CRON", "0 */15 * * * *"),
			SessionEvictCron:  getEnv("SESSION_EVICT_CRON", "0 */5 * * * *"),
			SessionIdleTTL:    time.Duration(getEnvAsInt("SESSION_IDLE_TTL_MINUTES", 60)) * time.Minute,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "charforge-backend"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.ImageService.URL == "" {
		return fmt.Errorf("IMAGE_SERVICE_URL is required")
	}

	switch c.Snapshot.Backend {
	case "memory", "redis":
	case "sql":
		if c.Snapshot.SQLDSN == "" {
			return fmt.Errorf("SNAPSHOT_SQL_DSN is required when SNAPSHOT_BACKEND=sql")
		}
	default:
		return fmt.Errorf("unsupported SNAPSHOT_BACKEND: %s", c.Snapshot.Backend)
	}

	if c.ImageService.RateLimit < 0 {
		return fmt.Errorf("IMAGE_SERVICE_RATE_LIMIT must not be negative")
	}

	if c.Jobs.SessionEvictCron != "" && c.Jobs.SessionIdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL_MINUTES must be positive when SESSION_EVICT_CRON is set")
	}

	return nil
}

// SheetDSN returns the postgres DSN for character sheets, or "" when sheets
// should be kept in memory.
func (d DatabaseConfig) SheetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
