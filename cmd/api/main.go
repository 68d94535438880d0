package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/employee-records/internal/config"
	"github.com/employee-records/internal/database"
	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/handler"
	"github.com/employee-records/internal/photo"
	"github.com/employee-records/internal/repository"
	"github.com/employee-records/internal/service"
	"github.com/employee-records/internal/validation"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	// Подключение к БД
	attempts := 1
	if cfg.Storage.Driver == config.DriverPostgres {
		attempts = 30
	}
	db, err := database.Connect(cfg.Storage, cfg.Database, attempts)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := database.RunMigrations(sqlDB, cfg.Storage.Driver); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Хранилище записей
	kvRepo := repository.NewKVRepository(db)
	store := repository.NewRecordStore(kvRepo, cfg.Storage.Key, logger)
	store.Load(context.Background())
	logger.Info("employee records loaded",
		slog.String("driver", cfg.Storage.Driver),
		slog.Int("count", store.Len()),
	)

	unsubscribe := store.Observe().Subscribe(func(list []domain.Employee) {
		logger.Debug("employee records changed", slog.Int("count", len(list)))
	})
	defer unsubscribe()

	// Сервис черновика и хендлер
	draftService := service.NewDraftService(store, validation.New())

	photoOpts := photo.DefaultOptions
	photoOpts.MaxBytes = cfg.Photo.MaxBytes
	photoOpts.MaxDimension = cfg.Photo.MaxDimension

	employeeHandler := handler.NewEmployeeHandler(store, draftService, photoOpts, logger)

	// Настройка роутера
	router := handler.NewRouter(employeeHandler, cfg.Server.RequestMaxBytes, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}

		if store.Pending() {
			if err := store.Flush(ctx); err != nil {
				logger.Error("unsaved employee records lost", slog.Any("error", err))
			}
		}
		close(done)
	}()

	logger.Info("server is starting", slog.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}
