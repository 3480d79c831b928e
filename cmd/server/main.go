// Package main - Entry point for the sodacraft API server
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sodacraft/api"
	"sodacraft/core/catalog"
	"sodacraft/core/safety"
	"sodacraft/internal/config"
	"sodacraft/internal/logging"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", os.Getenv("SODACRAFT_CONFIG"), "config file path")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logging.Fatal("failed to load config", zap.String("path", *cfgPath), zap.Error(err))
		}
		cfg = loaded
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	if dir := os.Getenv("SODACRAFT_CATALOG_DIR"); dir != "" {
		cfg.Catalog.Dir = dir
	}
	if path := os.Getenv("SODACRAFT_LIMITS_PATH"); path != "" {
		cfg.Safety.LimitsPath = path
	}
	if addr := os.Getenv("SODACRAFT_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	cat, err := catalog.LoadDir(cfg.Catalog.Dir)
	if err != nil {
		logging.Fatal("failed to load recipe catalog", zap.String("dir", cfg.Catalog.Dir), zap.Error(err))
	}
	store := catalog.NewStore(cfg.Catalog.Dir, cat)

	limits, err := safety.LoadLimits(cfg.Safety.LimitsPath)
	if err != nil {
		logging.Fatal("failed to load safety limits", zap.String("path", cfg.Safety.LimitsPath), zap.Error(err))
	}

	if cfg.Catalog.Watch {
		watcher, err := catalog.NewWatcher(store)
		if err != nil {
			logging.Fatal("failed to create catalog watcher", zap.Error(err))
		}
		if err := watcher.Start(context.Background()); err != nil {
			logging.Fatal("failed to start catalog watcher", zap.Error(err))
		}
		defer watcher.Stop()
	}

	server := api.NewServer(version, store, limits)

	logging.Info("sodacraft server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("catalog_dir", cfg.Catalog.Dir),
		zap.String("version", version))

	if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
