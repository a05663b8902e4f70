package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/config"
	"github.com/kollect/backend/internal/db"
	"github.com/kollect/backend/internal/events"
	apphttp "github.com/kollect/backend/internal/http"
	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/http/handlers"
	"github.com/kollect/backend/internal/middleware"
	"github.com/kollect/backend/internal/repositories"
	"github.com/kollect/backend/internal/repositories/sqlite"
	"github.com/kollect/backend/internal/services"
	"github.com/kollect/backend/migrations"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer closeStore()

	// Redis (optional)
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// Events
	publisher, subscriber := eventBus(rdb, log)

	// Services
	authService := services.NewAuthService(store.Users, cfg, log)
	userService := services.NewUserService(store.Users, log)
	campaignService := services.NewCampaignService(store.Campaigns, store.Audit, log)
	bookmarkService := services.NewBookmarkService(store.Bookmarks, store.Campaigns, store.Audit, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to subscribe to notifications", zap.Error(err))
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, userService, authHandler, userHandler, campaignHandler, bookmarkHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr), zap.String("driver", cfg.DBDriver))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// openStore connects the configured backend and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories.Store, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		sqlDB, err := db.NewSQLiteDB(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunSQLiteMigrations(ctx, sqlDB, migrations.FS, "sqlite", log); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return sqlite.NewStore(sqlDB), func() { _ = sqlDB.Close() }, nil

	default:
		pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, pool, migrations.FS, "postgres", log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repositories.NewPostgresStore(pool), pool.Close, nil
	}
}

// без redis уведомления просто не доставляются
func eventBus(rdb *redis.Client, log *zap.Logger) (events.Publisher, events.Subscriber) {
	if rdb == nil {
		return events.NopPublisher{}, events.NopSubscriber{}
	}
	return events.NewRedisPublisher(rdb, log), events.NewRedisSubscriber(rdb, log)
}
