package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/dagcheck/internal/config"
	"github.com/specialistvlad/dagcheck/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logW   io.Writer
	logger *slog.Logger
	config *Config
	graphs config.GraphLoader
}

// New is the constructor for the main application. Logs are written to logW;
// graphs is used to read HCL graph files for the one-shot commands.
func New(logW io.Writer, cfg *Config, graphs config.GraphLoader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		logW:   logW,
		logger: logger,
		config: cfg,
		graphs: graphs,
	}
}

// Config returns the configuration the app was created with.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
