package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/vecmap/internal/ctxlog"
	"github.com/vk/vecmap/internal/hcl"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader *hcl.Loader
	config *Config
}

// NewApp is the constructor for the main application. Results go to outW,
// logs to logW, each App owning its own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		loader: hcl.NewLoader(),
		config: cfg,
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
