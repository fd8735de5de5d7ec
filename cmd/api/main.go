package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"

	"agrolink/internal/adapter/api"
	"agrolink/internal/adapter/api/handler"
	apimiddleware "agrolink/internal/adapter/api/middleware"
	"agrolink/internal/adapter/api/router"
	"agrolink/internal/adapter/repository"
	domainrepo "agrolink/internal/domain/repository"
	"agrolink/internal/infrastructure/database"
	"agrolink/internal/infrastructure/metrics"
	"agrolink/internal/infrastructure/password"
	"agrolink/internal/infrastructure/token"
	"agrolink/internal/infrastructure/websocket"
	"agrolink/internal/usecase"
	"agrolink/pkg/config"
	"agrolink/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetDebug(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer func() {
		if store.Close != nil {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close storage: %v", err)
			}
		}
	}()

	hasher := password.NewBcryptHasher(bcrypt.DefaultCost)

	if cfg.SeedDemoData {
		if err := repository.SeedDemoData(ctx, store, hasher.Hash); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	revocations, closeRevocations, err := openRevocationStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer closeRevocations()

	tokenManager := token.NewManager(cfg.JWTSecret, cfg.TokenTTL(), revocations)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	notificationUseCase := usecase.NewNotificationUseCase(store.Notifications, wsManager)
	authUseCase := usecase.NewAuthUseCase(store.Users, store.Providers, store.Producers, hasher, tokenManager)
	userUseCase := usecase.NewUserUseCase(store.Users, store.Providers, store.Producers, hasher)
	providerUseCase := usecase.NewProviderUseCase(store.Providers, store.Users, store.Reviews)
	producerUseCase := usecase.NewProducerUseCase(store.Producers, store.Users)
	bookingUseCase := usecase.NewBookingUseCase(store.Bookings, store.Producers, store.Providers, store.Users, notificationUseCase)
	reviewUseCase := usecase.NewReviewUseCase(store.Reviews, store.Bookings, store.Providers, notificationUseCase)

	collector := metrics.NewCollector()
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler.Setup(authUseCase, userUseCase, providerUseCase, producerUseCase, bookingUseCase, reviewUseCase, notificationUseCase, collector)
	handler.SetupHealthHandler(cfg.StorageBackend)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.Metrics(collector))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenManager)
	rateLimiter := apimiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.RunCleanup(ctx, 10*time.Minute, time.Hour)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware, rateLimiter)
	router.SetupWebSocketRouter(e, wsHandler)
	router.SetupMetricsRouter(e, registry)

	go func() {
		logger.Info("Starting server on port %s (%s storage)", cfg.ServerPort, cfg.StorageBackend)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*domainrepo.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return repository.NewMemoryStore(), nil

	case config.BackendPostgres:
		db, err := database.OpenPostgres(cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return repository.NewGormStore(db), nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return repository.NewGormStore(db), nil

	case config.BackendFirestore:
		client, err := database.OpenFirestore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewFirestoreStore(client), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func openRevocationStore(ctx context.Context, cfg *config.Config) (token.RevocationStore, func(), error) {
	if cfg.RedisAddr == "" {
		return token.NewMemoryRevocationStore(), func() {}, nil
	}

	store, err := token.NewRedisRevocationStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Token revocations stored in Redis at %s", cfg.RedisAddr)

	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close Redis: %v", err)
		}
	}, nil
}
