// Package providers contains dependency injection providers for the bookshelf server.
package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookshelf-server/internal/config"
	"github.com/listenupapp/bookshelf-server/internal/logger"
)

// defaultShutdownTimeout is used when the config leaves the shutdown timeout unset.
const defaultShutdownTimeout = 30 * time.Second

// ProvideConfig provides the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.ForEnvironment(cfg.App.Environment, cfg.Logger.Level)

	log.Info("Starting bookshelf server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.Path,
	)

	return log, nil
}
