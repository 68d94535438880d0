package database

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/employee-records/internal/config"
	"github.com/employee-records/internal/domain"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Connect открывает соединение с хранилищем согласно конфигурации.
// PostgreSQL может стартовать позже приложения, поэтому подключение повторяется.
func Connect(storage config.StorageConfig, db config.DatabaseConfig, attempts int) (*gorm.DB, error) {
	dialector, err := dialectorFor(storage, db)
	if err != nil {
		return nil, err
	}

	if attempts < 1 {
		attempts = 1
	}

	var conn *gorm.DB
	for i := range attempts {
		conn, err = gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			sqlDB, dbErr := conn.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					return conn, nil
				}
			} else {
				err = dbErr
			}
		}
		if i < attempts-1 {
			time.Sleep(time.Second)
		}
	}

	return nil, fmt.Errorf("failed to connect to %s storage after %d attempts: %w", storage.Driver, attempts, err)
}

// RunMigrations применяет встроенные миграции goose
func RunMigrations(db *sql.DB, driver string) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func dialectorFor(storage config.StorageConfig, db config.DatabaseConfig) (gorm.Dialector, error) {
	switch storage.Driver {
	case config.DriverSQLite:
		return sqlite.Open(storage.SQLitePath), nil
	case config.DriverPostgres:
		return postgres.Open(db.DSN()), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, storage.Driver)
	}
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case config.DriverSQLite:
		return "sqlite3", nil
	case config.DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, driver)
	}
}
