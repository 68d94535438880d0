package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "STORAGE_DRIVER", "STORAGE_KEY", "SQLITE_PATH",
		"PHOTO_MAX_BYTES", "PHOTO_MAX_DIMENSION", "REQUEST_MAX_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "employees", cfg.Storage.Key)
	assert.Equal(t, int64(5<<20), cfg.Photo.MaxBytes)
	assert.Equal(t, 512, cfg.Photo.MaxDimension)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("STORAGE_KEY", "staff")
	t.Setenv("PHOTO_MAX_DIMENSION", "128")
	t.Setenv("PHOTO_MAX_BYTES", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "staff", cfg.Storage.Key)
	assert.Equal(t, 128, cfg.Photo.MaxDimension)
	assert.Equal(t, int64(5<<20), cfg.Photo.MaxBytes)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
