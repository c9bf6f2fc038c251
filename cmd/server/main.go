package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/server"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override environment
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Server port")
	flag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Server host")
	flag.StringVar(&cfg.Desktop.CatalogPath, "catalog", cfg.Desktop.CatalogPath, "Window catalog file (.yaml, .toml or .json)")
	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.Logging.File, "log-file", cfg.Logging.File, "Rotated JSON log file")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development mode (colored logs)")
	flag.Parse()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = srv.Run(ctx)
	srv.Close()
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
