package database

import (
	"path/filepath"
	"testing"

	"github.com/employee-records/internal/config"
	"github.com/employee-records/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndMigrate_SQLite(t *testing.T) {
	storage := config.StorageConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "records.db"),
	}

	db, err := Connect(storage, config.DatabaseConfig{}, 1)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, RunMigrations(sqlDB, storage.Driver))
	assert.True(t, db.Migrator().HasTable(&domain.KVEntry{}))

	// повторный запуск не должен ничего ломать
	require.NoError(t, RunMigrations(sqlDB, storage.Driver))
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(config.StorageConfig{Driver: "mongo"}, config.DatabaseConfig{}, 3)
	assert.ErrorIs(t, err, domain.ErrUnsupportedDriver)
}

func TestRunMigrations_UnsupportedDriver(t *testing.T) {
	err := RunMigrations(nil, "mongo")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDriver)
}
