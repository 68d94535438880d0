package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Photo    PhotoConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port            string
	RequestMaxBytes int64
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level slog.Level
}

// StorageConfig - настройки хранилища записей
type StorageConfig struct {
	Driver     string
	Key        string
	SQLitePath string
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PhotoConfig - ограничения для фото сотрудника
type PhotoConfig struct {
	MaxBytes     int64
	MaxDimension int
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load загружает конфигурацию из переменных окружения.
// Файл .env, если он есть, подгружается первым и не перекрывает уже заданные переменные.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			RequestMaxBytes: getEnvInt64("REQUEST_MAX_BYTES", 12<<20),
		},
		Log: LogConfig{
			Level: parseLevel(getEnv("LOG_LEVEL", "info")),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
			Key:        getEnv("STORAGE_KEY", "employees"),
			SQLitePath: getEnv("SQLITE_PATH", "employees.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "employees"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Photo: PhotoConfig{
			MaxBytes:     getEnvInt64("PHOTO_MAX_BYTES", 5<<20),
			MaxDimension: int(getEnvInt64("PHOTO_MAX_DIMENSION", 512)),
		},
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
