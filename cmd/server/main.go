// Package main is the entry point for the mapiker HTTP server.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mapiker/adapters/storage"
	"mapiker/api"
	"mapiker/core/engine"
	"mapiker/internal/config"
	"mapiker/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "config file path (.json, or .hcl catalog overlay)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	// Local .env is optional.
	_ = godotenv.Load()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logging.Fatal("failed to load config", zap.Error(err))
		}
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	if dsn := os.Getenv("MAPIKER_DATABASE_URL"); dsn != "" {
		cfg.Storage = storage.Config{Backend: storage.BackendPostgres, DSN: dsn}
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		logging.Fatal("failed to open project store", zap.Error(err))
	}
	defer store.Close()

	rates, err := cfg.RateCard()
	if err != nil {
		logging.Fatal("invalid rate card", zap.Error(err))
	}

	eng, err := engine.New(store, rates, cfg.Dimensions())
	if err != nil {
		logging.Fatal("failed to create engine", zap.Error(err))
	}

	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	server := api.NewServer(eng, version)
	logging.Info("mapiker server listening",
		zap.String("addr", listen),
		zap.String("version", version),
		zap.String("storage", string(cfg.Storage.Backend)))

	if err := server.ListenAndServe(listen); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
