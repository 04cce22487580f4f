// Package cli provides the dependencies shared by tabmover's commands.
package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bnema/tabmover/internal/cli/styles"
	"github.com/bnema/tabmover/internal/domain/build"
	"github.com/bnema/tabmover/internal/infrastructure/config"
	"github.com/bnema/tabmover/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	// Manager is nil when the config directory could not be resolved.
	Manager *config.Manager

	ctx context.Context
}

// NewApp loads configuration and builds the stderr logger.
func NewApp() (*App, error) {
	mgr, cfg, loadErr := loadConfig()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("using default configuration")
	}

	return &App{
		Config:  cfg,
		Theme:   styles.NewTheme(),
		Manager: mgr,
		ctx:     logging.WithContext(context.Background(), logger),
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// SetLogger replaces the context logger, e.g. when logs move to a file.
func (a *App) SetLogger(logger zerolog.Logger) {
	a.ctx = logging.WithContext(a.ctx, logger)
}

// Close releases all resources.
func (a *App) Close() error {
	return nil
}

// loadConfig loads configuration from standard locations, falling back to
// defaults when the file cannot be read.
func loadConfig() (*config.Manager, *config.Config, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, config.DefaultConfig(), err
	}

	if err := mgr.Load(); err != nil {
		return nil, config.DefaultConfig(), err
	}

	return mgr, mgr.Get(), nil
}
