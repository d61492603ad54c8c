package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/config"
	"github.com/Dosada05/tournament-predictor/db"
	"github.com/Dosada05/tournament-predictor/handlers"
	"github.com/Dosada05/tournament-predictor/repositories"
	api "github.com/Dosada05/tournament-predictor/routes"
	"github.com/Dosada05/tournament-predictor/services"
	"github.com/Dosada05/tournament-predictor/storage"
	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
)

func main() {
	seed := flag.Bool("seed", false, "seed the default 48-team fixture into an empty database and continue")
	flag.Parse()

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo, cfg.AdminEmail)
	teamService := services.NewTeamService(teamRepo, cloudflareUploader, logger)
	bracketService := services.NewBracketService(matchRepo, teamRepo, predictionRepo)
	resultService := services.NewResultService(dbConn, matchRepo, teamRepo, predictionRepo, wsHub, logger)
	predictionService := services.NewPredictionService(predictionRepo, matchRepo, wsHub, logger)
	leaderboardService := services.NewLeaderboardService(predictionRepo)
	setupService := services.NewSetupService(dbConn, teamRepo, matchRepo, logger)
	logger.Info("Services initialized")

	if *seed {
		if err := setupService.SeedFixture(context.Background(), time.Now().Add(24*time.Hour)); err != nil {
			logger.Error("failed to seed fixture", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Планировщик: раз в минуту объявляем матчи, по которым закрылся приём прогнозов.
	scheduler := cron.New()
	var lockMu sync.Mutex
	lastLockCheck := time.Now()
	if _, err := scheduler.AddFunc("@every 1m", func() {
		lockMu.Lock()
		since := lastLockCheck
		until := time.Now()
		lastLockCheck = until
		lockMu.Unlock()

		locked, err := predictionService.AnnounceLockedMatches(context.Background(), since, until)
		if err != nil {
			logger.Error("scheduler: failed to announce locked matches", slog.Any("error", err))
			return
		}
		if len(locked) > 0 {
			logger.Info("scheduler: predictions locked", slog.Any("matches", locked))
		}
	}); err != nil {
		logger.Error("failed to register prediction lock job", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info("Prediction lock scheduler started")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	teamHandler := handlers.NewTeamHandler(teamService)
	resultHandler := handlers.NewResultHandler(resultService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		teamHandler,
		resultHandler,
		predictionHandler,
		bracketHandler,
		leaderboardHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
