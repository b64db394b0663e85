package main

import (
	"context"
	"errors"
	"os"

	"github.com/mnfaaiiq/soniq/internal/services"
	"github.com/mnfaaiiq/soniq/internal/shared"
	"github.com/mnfaaiiq/soniq/internal/storage"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	var library services.Library
	if config.Backend.URL != "" && config.Backend.AnonKey != "" {
		if svc, err := services.NewSupabaseService(config.Backend, nil, logger); err == nil {
			library = svc
		} else {
			logger.Warn("backend client unavailable", "error", err)
		}
	}

	assets := storage.NewBucketStorage(config.Backend.URL, config.Storage)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Library:    library,
		Assets:     assets,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "soniq",
		Usage:    "Stream and manage your music library from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
