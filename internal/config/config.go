package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers supported by the backend.
const (
	DriverMemory  = "memory"
	DriverMongoDB = "mongodb"
	DriverRedis   = "redis"
)

// Config represents the full application configuration surface shared by
// the backend and frontend binaries.
type Config struct {
	Backend  BackendConfig
	Frontend FrontendConfig
	Store    StoreConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Sheets   SheetsConfig
	Snapshot SnapshotConfig
	Log      LogConfig
}

// BackendConfig holds options of the item store HTTP service.
type BackendConfig struct {
	Port string
}

// FrontendConfig holds options of the relay HTTP service.
type FrontendConfig struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
}

// StoreConfig selects the item store implementation.
type StoreConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// RedisConfig holds settings for Redis.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// SnapshotConfig holds scheduler-related settings of the snapshot export.
type SnapshotConfig struct {
	CronSchedule string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine, configuration may come from the environment.
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("BACKEND_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Backend: BackendConfig{
			Port: getenvWithDefault("BACKEND_PORT", "5001"),
		},
		Frontend: FrontendConfig{
			Port:           getenvWithDefault("FRONTEND_PORT", "5002"),
			BackendURL:     getenvWithDefault("INVENTORY_SERVICE_URL", "http://localhost:5001"),
			BackendTimeout: timeout,
		},
		Store: StoreConfig{
			Driver: getenvWithDefault("STORE_DRIVER", DriverMemory),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "inventory"),
		},
		Redis: RedisConfig{
			Address:  getenvWithDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Backend.Port == "" {
		return errors.New("BACKEND_PORT must be provided")
	}
	if c.Frontend.Port == "" {
		return errors.New("FRONTEND_PORT must be provided")
	}
	if c.Backend.Port == c.Frontend.Port {
		return errors.New("BACKEND_PORT and FRONTEND_PORT must differ")
	}

	u, err := url.Parse(c.Frontend.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("INVENTORY_SERVICE_URL must be an absolute URL, got %q", c.Frontend.BackendURL)
	}
	if c.Frontend.BackendTimeout < 0 {
		return errors.New("BACKEND_TIMEOUT must not be negative")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORE_DRIVER=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case DriverRedis:
		if c.Redis.Address == "" {
			return errors.New("REDIS_ADDR must be provided when STORE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Sheets.SpreadsheetID != "" {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_ID is set")
		}
		if c.Snapshot.CronSchedule == "" {
			return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
		}
	}

	return nil
}

// SnapshotEnabled reports whether the periodic Google Sheets export is configured.
func (c *Config) SnapshotEnabled() bool {
	return c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
