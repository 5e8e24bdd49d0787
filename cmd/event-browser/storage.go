package main

import (
	"context"
	"event-browser-backend/cmd/event-browser/repository"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	driverMemory   = "memory"
	driverBolt     = "bolt"
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
	driverRedis    = "redis"
)

type kvBackend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

func openStorage(ctx context.Context, cfg EnvCfg, log *zap.Logger) (kvBackend, error) {

	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	log = log.Named("storage").With(zap.String("driver", driver))

	switch driver {
	case driverMemory:
		log.Warn("using in-memory storage, nothing will survive a restart")
		return repository.NewMemoryRepo(), nil

	case driverBolt:
		repo, err := repository.NewBoltRepo(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		log.Info("opened bolt storage", zap.String("path", cfg.BoltPath))
		return repo, nil

	case driverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, fmt.Errorf("failed to create sqlite dir: %w", err)
			}
		}
		repo, err := repository.NewSQLiteRepo(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("opened sqlite storage", zap.String("path", cfg.SQLitePath))
		return repo, nil

	case driverPostgres:
		if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("postgres storage needs DB_HOST, DB_USER and DB_NAME")
		}

		db, err := gorm.Open(
			postgres.Open(formatConnectionString(cfg)),
			&gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			},
		)
		if err != nil {
			return nil, err
		}

		repo := repository.NewPostgresRepo(db)
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to migrate storage_entries: %w", err)
		}
		log.Info("connected to postgres", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
		return repo, nil

	case driverRedis:
		repo := repository.NewRedisRepo(newRedisClient(cfg), cfg.RedisKeyPrefix)
		if err := repo.Ping(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		return repo, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
