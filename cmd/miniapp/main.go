// Package main реализует точку входа backend Telegram Mini App.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/adapters/cache"
	"tgminiapp/internal/miniapp/adapters/grpc"
	miniapphttp "tgminiapp/internal/miniapp/adapters/http"
	"tgminiapp/internal/miniapp/adapters/postgres"
	"tgminiapp/internal/miniapp/adapters/services"
	"tgminiapp/internal/miniapp/app"
	"tgminiapp/internal/miniapp/config"
	"tgminiapp/internal/miniapp/db"
	portcache "tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/pkg/db/redis"
	"tgminiapp/pkg/logger"
	"tgminiapp/pkg/retry"
	"tgminiapp/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "MINIAPP_LOGGER_MODE"
	EnvLoggerLevel = "MINIAPP_LOGGER_LEVEL"

	envFile       = ".env"
	migrationsDir = "migrations/miniapp"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to connect to Redis, list cache disabled"
	ErrStartGRPC            = "failed to start gRPC server"
	ErrServeHTTP            = "HTTP server stopped with error"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "miniapp service started"
	LogServiceShutdownDone = "miniapp service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing list cache"
	LogStoppingGRPC        = "stopping gRPC server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing list cache"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingGRPC        = "starting gRPC health server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, envFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		var database *db.DB
		err = retry.Do(ctx, "postgres", retry.DefaultConfig(), func(ctx context.Context) error {
			var connErr error
			database, connErr = db.New(ctx, &cfg.Postgres, migrationsDir)
			return connErr
		})
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache, zap.Bool("redis_enabled", cfg.Redis.Enabled))
		lists := newListCache(ctx, &cfg.Redis)

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		txManager := repoFactory.TxManager()

		log.Info(ctx, LogInitServices)
		resolver := services.NewOwnerResolver(cfg.Auth.JWTSecret)
		sanitizer := services.NewHTMLSanitizer()

		log.Info(ctx, LogInitUseCases)
		folderUseCase := app.NewFolderUseCase(
			repoFactory.FolderRepository(), repoFactory.CollectionRepository(), txManager, lists, cfg.Limits.MaxTreeDepth)
		collectionUseCase := app.NewCollectionUseCase(repoFactory.CollectionRepository(), folderUseCase, txManager, lists)
		noteUseCase := app.NewNoteUseCase(
			repoFactory.NoteRepository(), repoFactory.AttributeRepository(), repoFactory.AttachmentRepository(), txManager, sanitizer)
		attributeUseCase := app.NewAttributeUseCase(repoFactory.AttributeRepository(), repoFactory.NoteRepository())
		attachmentUseCase := app.NewAttachmentUseCase(
			repoFactory.AttachmentRepository(), repoFactory.NoteRepository(), cfg.Limits.MaxUploadBytes)

		log.Info(ctx, LogInitHTTPServer)
		httpApp := miniapphttp.NewApp(fiber.Config{
			AppName:      config.ServiceName,
			BodyLimit:    cfg.HTTP.BodyLimit,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		miniapphttp.SetupRouter(httpApp, resolver, miniapphttp.Services{
			Folders:     folderUseCase,
			Collections: collectionUseCase,
			Notes:       noteUseCase,
			Attributes:  attributeUseCase,
			Attachments: attachmentUseCase,
		}, cfg.HTTP.CORSOrigins)

		log.Info(ctx, LogStartingGRPC)
		grpcServer := grpc.New(&cfg.GRPC)
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		readinessCtx, stopReadiness := context.WithCancel(ctx)
		defer stopReadiness()
		grpcServer.WatchReadiness(readinessCtx, cfg.GRPC.ReadinessInterval, database.Ping)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		serveCtx, stopServing := context.WithCancel(ctx)
		defer stopServing()
		serveErr := make(chan error, 1)
		go func() {
			err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true})
			if err != nil {
				log.Error(ctx, ErrServeHTTP, zap.Error(err))
				stopServing()
			}
			serveErr <- err
		}()

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				stopReadiness()
				grpcServer.Drain(ctx)
				return httpApp.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingGRPC)
				return grpcServer.Stop(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingCache)
				return lists.Close()
			},
		)

		// Пул закрывается последним: HTTP запросы должны завершиться.
		log.Info(ctx, LogClosingDB)
		database.Close(ctx)

		select {
		case err := <-serveErr:
			if err != nil {
				exitCode = 1
			}
		default:
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newListCache подключает Redis, если он включен; при ошибке сервис работает без кэша.
func newListCache(ctx context.Context, cfg *config.RedisConfig) portcache.ListCache {
	if !cfg.Enabled {
		return cache.NewNoopListCache()
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = 3

	var client *redis.Client
	err := retry.Do(ctx, "redis", retryCfg, func(ctx context.Context) error {
		var connErr error
		client, connErr = redis.NewClient(ctx, cfg.ClientConfig())
		return connErr
	})
	if err != nil {
		logger.Log(ctx).Warn(ctx, ErrInitRedis, zap.Error(err))
		return cache.NewNoopListCache()
	}
	return cache.NewBreakerListCache(
		cache.NewRedisListCache(client, cfg.KeyPrefix, cfg.DefaultTTL),
		cache.BreakerConfig{ErrorThreshold: cfg.BreakerErrors, Timeout: cfg.BreakerTimeout},
	)
}
