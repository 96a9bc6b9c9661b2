package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/salonx/internal/cache"
	"github.com/desertthunder/salonx/internal/repositories"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnvFile(".env"); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	config := shared.DefaultConfig()
	configPath := os.Getenv(shared.EnvConfig)
	if configPath == "" {
		configPath = "config.toml"
	}
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}
	shared.ApplyEnv(config)

	if lvl, err := shared.ParseLogLevel(config.LogLevel); err == nil {
		shared.SetLogLevel(logger, lvl)
	} else {
		logger.Warn("ignoring log level", "error", err)
	}

	opts := RunnerOpts{Config: config, Logger: logger}

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		logger.Warn("database unavailable, session and export jobs will not persist", "error", err)
	} else {
		defer db.Close()
		opts.Sessions = repositories.NewSessionRepository(db)
		opts.Jobs = repositories.NewExportJobRepository(db)
	}

	ctx := context.Background()
	if mirror := openMirror(ctx, config.Cache.Redis, logger); mirror != nil {
		defer mirror.Close()
		opts.Mirror = mirror
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "salonx",
		Usage:    "Salon back-office client with cached reads",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		closeDB(db)
		logger.Fatalf("application error: %v", err)
	}
}

// openMirror connects the Redis cache mirror when an address is configured.
func openMirror(ctx context.Context, cfg shared.RedisConfig, logger *log.Logger) *cache.RedisMirror {
	if cfg.Addr == "" {
		return nil
	}
	mirror := cache.NewRedisMirror(cache.RedisConfig{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
		Prefix:   cfg.Prefix,
	}, logger)
	if err := mirror.Ping(ctx); err != nil {
		logger.Warn("redis mirror unavailable, using in-process caches only", "addr", cfg.Addr, "error", err)
		mirror.Close()
		return nil
	}
	logger.Debug("redis mirror connected", "addr", cfg.Addr)
	return mirror
}

func closeDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}
