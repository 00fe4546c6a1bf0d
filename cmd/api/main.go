// Command api serves the task board REST API.
//
//	@title                      Task Board API
//	@version                    1.0
//	@description                Personal task and category management with profile enrichment.
//	@BasePath                   /
//	@securityDefinitions.apikey BearerAuth
//	@in                         header
//	@name                       Authorization
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

	"github.com/rs/zerolog"

	_ "github.com/taskboard/task-api/docs"
	"github.com/taskboard/task-api/internal/api"
	"github.com/taskboard/task-api/internal/api/handler"
	"github.com/taskboard/task-api/internal/api/metrics"
	"github.com/taskboard/task-api/internal/core/ports"
	"github.com/taskboard/task-api/internal/core/service"
	"github.com/taskboard/task-api/internal/infrastructure/cloudinary"
	"github.com/taskboard/task-api/internal/infrastructure/db/mongo"
	"github.com/taskboard/task-api/internal/infrastructure/db/redis"
	"github.com/taskboard/task-api/internal/infrastructure/db/sqlite"
	"github.com/taskboard/task-api/internal/infrastructure/linkedin"
	"github.com/taskboard/task-api/internal/pkg/config"
	"github.com/taskboard/task-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type taskStore interface {
	ports.TaskRepository
	service.CategoryReferenceCleaner
}

// storage bundles the repositories of the selected driver.
type storage struct {
	users      ports.UserRepository
	tasks      taskStore
	categories ports.CategoryRepository
	check      handler.Checker
	close      func(context.Context) error
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "task-api",
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("storage close failed")
		}
	}()

	checks := map[string]handler.Checker{cfg.StorageDriver: store.check}

	// Idempotency keys are optional; without Redis the header is ignored.
	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
		checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, rdb) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency store enabled")
	} else {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys disabled")
	}

	uploader, err := cloudinary.New(cloudinary.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	})
	if err != nil {
		return err
	}
	scraper := linkedin.NewScraper(cfg.Scraper.Timeout, logger.Component("linkedin"))

	router := api.NewRouter(api.Dependencies{
		Logger:      logger.Component("http"),
		JWTSecret:   cfg.JWTSecret,
		AuthService: service.NewAuthService(store.users, cfg.JWTSecret, cfg.JWTTTL),
		UserService: service.NewUserService(
			store.users,
			metrics.TimeUploader(uploader),
			metrics.TimeScraper(scraper),
			cfg.MaxUploadBytes,
			logger.Component("users"),
		),
		TaskService:     service.NewTaskService(store.tasks, store.categories, idem, logger.Component("tasks")),
		CategoryService: service.NewCategoryService(store.categories, store.tasks, idem, logger.Component("categories")),
		HealthChecks:    checks,
		MaxUploadBytes:  cfg.MaxUploadBytes,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("server shutdown completed")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &storage{
			users:      mongo.NewUserRepository(db),
			tasks:      mongo.NewTaskRepository(db),
			categories: mongo.NewCategoryRepository(db),
			check:      func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:      client.Disconnect,
		}, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path, logger.Component("sqlite"))
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("opened sqlite database")
		return &storage{
			users:      sqlite.NewUserRepository(db),
			tasks:      sqlite.NewTaskRepository(db),
			categories: sqlite.NewCategoryRepository(db),
			check:      func(context.Context) error { return sqlite.Ping(db) },
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
