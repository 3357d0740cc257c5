package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"BACKEND_PORT", "FRONTEND_PORT", "INVENTORY_SERVICE_URL", "BACKEND_TIMEOUT",
	"STORE_DRIVER", "MONGODB_URI", "MONGODB_DB_NAME", "REDIS_ADDR", "REDIS_PASSWORD",
	"REDIS_DB", "GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_ID",
	"SNAPSHOT_CRON_SCHEDULE", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Backend.Port)
	assert.Equal(t, "5002", cfg.Frontend.Port)
	assert.Equal(t, "http://localhost:5001", cfg.Frontend.BackendURL)
	assert.Equal(t, 15*time.Second, cfg.Frontend.BackendTimeout)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "inventory", cfg.MongoDB.DBName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.SnapshotEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("INVENTORY_SERVICE_URL", "http://backend:5001")
	t.Setenv("BACKEND_TIMEOUT", "2s")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://backend:5001", cfg.Frontend.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.Frontend.BackendTimeout)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, even when empty.
	for _, key := range []string{"FRONTEND_PORT", "LOG_LEVEL"} {
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FRONTEND_PORT=8081\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("FRONTEND_PORT")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Frontend.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad timeout", env: map[string]string{"BACKEND_TIMEOUT": "soon"}},
		{name: "bad redis db", env: map[string]string{"REDIS_DB": "x"}},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "mongo without uri", env: map[string]string{"STORE_DRIVER": "mongodb"}},
		{name: "relative backend url", env: map[string]string{"INVENTORY_SERVICE_URL": "localhost"}},
		{name: "same ports", env: map[string]string{"BACKEND_PORT": "7000", "FRONTEND_PORT": "7000"}},
		{name: "sheet without credentials", env: map[string]string{"GOOGLE_SHEET_ID": "sheet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}

func TestSnapshotEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_SHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/tmp/creds.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.True(t, cfg.SnapshotEnabled())
	assert.Equal(t, "0 20 * * *", cfg.Snapshot.CronSchedule)
}
