package main

import (
	"context"
	"errors"
	"event-browser-backend/cmd/event-browser/apis"
	"event-browser-backend/cmd/event-browser/model"
	"event-browser-backend/cmd/event-browser/notify"
	"event-browser-backend/cmd/event-browser/store"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {

	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	var cfg EnvCfg
	err = envconfig.Process(envPrefix, &cfg)
	if err != nil {
		panic(err)
	}

	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	backend, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer backend.Close()

	opts := []store.Option{store.WithLogger(logger)}
	if cfg.SeedDefaultUser {
		opts = append(opts, store.WithDefaultUser(model.DefaultUser()))
	}

	st, err := store.New(ctx, backend, opts...)
	if err != nil {
		logger.Fatal("failed to load store", zap.Error(err))
	}

	if cfg.RedisChannel != "" {
		client := newRedisClient(cfg)
		defer client.Close()

		publisher := notify.NewRedisPublisher(client, cfg.RedisChannel, logger)
		detach := publisher.Attach(st)
		defer detach()

		logger.Info("publishing changes", zap.String("channel", cfg.RedisChannel))
	}

	e := newServer(cfg, st, logger)

	go func() {
		logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("driver", cfg.StorageDriver),
		)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}
}

func newServer(cfg EnvCfg, st *store.Store, logger *zap.Logger) *echo.Echo {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(apis.RequestLogger(logger))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler))

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1")

	apis.
		NewHealthCheckAPI(st).
		Setup(rootg)

	apis.
		NewEventAPI(st, logger, cfg.Debug).
		Setup(v1g)

	apis.
		NewUserAPI(st).
		Setup(v1g)

	return e
}

func newRedisClient(cfg EnvCfg) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
