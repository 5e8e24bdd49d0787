package main

import (
	"fmt"
)

const envPrefix = "EVENT_BROWSER"

type EnvCfg struct {
	Port          int    `envconfig:"PORT" default:"8080"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"bolt"`
	BoltPath      string `envconfig:"BOLT_PATH" default:"data/event-browser.db"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"data/event-browser.sqlite"`

	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`

	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"event-browser:"`
	RedisChannel   string `envconfig:"REDIS_CHANNEL"`

	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	Debug           bool     `envconfig:"DEBUG" default:"false"`
	SeedDefaultUser bool     `envconfig:"SEED_DEFAULT_USER" default:"true"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	BodyLimit       string   `envconfig:"BODY_LIMIT" default:"10M"`
}

func formatConnectionString(cfg EnvCfg) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
	)
}
