package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-scheduler/apiclient"
	"github.com/Dosada05/tournament-scheduler/brackets"
	"github.com/Dosada05/tournament-scheduler/config"
	"github.com/Dosada05/tournament-scheduler/db"
	"github.com/Dosada05/tournament-scheduler/handlers"
	"github.com/Dosada05/tournament-scheduler/notifications"
	"github.com/Dosada05/tournament-scheduler/repositories"
	api "github.com/Dosada05/tournament-scheduler/routes"
	"github.com/Dosada05/tournament-scheduler/services"
	"github.com/Dosada05/tournament-scheduler/storage"
	"github.com/go-chi/chi/v5"
)

const version = "1.0.0"

// @title Tournament Scheduler API
// @version 1.0
// @description Group configuration and schedule management for tournaments.
// @BasePath /
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.Bool("archive", cfg.ArchiveEnabled()),
		slog.Bool("r2", cfg.R2Enabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Архив расписаний (необязательно)
	var dbConn *sql.DB
	var archiveRepo repositories.ArchiveRepository
	if cfg.ArchiveEnabled() {
		dbConn, err = db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()

		archiveRepo = repositories.NewPostgresArchiveRepository(dbConn)
		if err := archiveRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("prepare schedule archive: %w", err)
		}
		logger.Info("schedule archive ready")
	}

	// Загрузчик выгрузок (Cloudflare R2, необязательно)
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	// WebSocket Hub
	hubDone := make(chan struct{})
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(hubDone)
	defer close(hubDone)

	client := apiclient.New(apiclient.Config{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.APITimeout,
		RequestsPerMinute: cfg.APIRequestsPerMinute,
		Logger:            logger,
	})

	// Репозитории
	configRepo := repositories.NewRemoteConfigurationRepository(client)
	matchRepo := repositories.NewRemoteMatchRepository(client)
	fixtureRepo := repositories.NewRemoteFixtureRepository(client)
	eventRepo := repositories.NewRemoteMatchEventRepository(client)

	// Сервисы
	hubNotifier := notifications.NewHubNotifier(wsHub, logger)
	notifier := notifications.Multi{hubNotifier, notifications.NewLogNotifier(logger)}
	guard := services.NewTournamentGuard()

	configService := services.NewConfigurationService(configRepo, notifier, guard, logger)
	scheduleService := services.NewScheduleService(matchRepo, fixtureRepo, configRepo, archiveRepo, hubNotifier, guard, logger)
	eventService := services.NewMatchEventService(eventRepo)
	exportService := services.NewExportService(scheduleService, uploader, logger)
	logger.Info("services initialized")

	// Без архива health не пингует БД; nil *sql.DB в интерфейсе не передаём.
	var pinger handlers.Pinger
	if dbConn != nil {
		pinger = dbConn
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Health:        handlers.NewHealthHandler(pinger, version),
		Groups:        handlers.NewGroupHandler(configService),
		Configuration: handlers.NewConfigurationHandler(configService),
		Schedule:      handlers.NewScheduleHandler(scheduleService, exportService),
		MatchEvents:   handlers.NewMatchEventHandler(eventService),
		WebSocket:     handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}, api.Options{
		Logger:            logger,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}
