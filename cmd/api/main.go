package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"jainvest/internal/app"
	"jainvest/internal/config"
	"jainvest/internal/database"
	"jainvest/internal/logger"
	"jainvest/internal/observability"
	"jainvest/internal/scheduler"
	"jainvest/internal/store"
	"jainvest/internal/validator"
)

// @title           Jainvest API
// @version         1.0
// @description     Jainvest is a financial-literacy platform with paper trading, backtesting, quizzes, and a learner leaderboard.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey PipelineKey
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	shutdownTracing := observability.Init(ctx, observability.Config{
		ServiceName: "jainvest-api",
		Environment: appConfig.Env,
		Version:     "1.0",
	})
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warnw("tracer shutdown failed", "error", err)
		}
	}()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("database close failed", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	st, err := newStore(ctx, appConfig, dbManager)
	if err != nil {
		return err
	}

	validator.Register()

	// Initialize services
	svcs, err := app.NewServices(ctx, appConfig, dbManager.DB(), st)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	if err := svcs.Users.SeedDemoUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed demo users: %w", err)
	}

	sched := scheduler.New(svcs.Users, svcs.Portfolio, appConfig.PriceRefreshInterval)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           app.NewRouter(appConfig, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Jainvest backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// newStore picks the key-value backend. The database-backed store is the
// default; REDIS_ADDR adds a read-through cache in front of it.
func newStore(ctx context.Context, cfg *config.Config, dbManager *database.Manager) (store.Store, error) {
	var st store.Store
	switch cfg.StoreDriver {
	case "memory":
		st = store.NewMemory()
	case "gorm", "":
		st = store.NewGorm(dbManager.DB())
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	if cfg.RedisAddr == "" {
		return st, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Get().Warnw("redis unreachable, serving from primary store only", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return st, nil
	}
	logger.Get().Infow("redis cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisCacheTTL.String())
	return store.NewCached(st, rdb, cfg.RedisCacheTTL), nil
}
