package app

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/config"
)

// AtomicLogger allows swapping the process logger at runtime without
// synchronizing every call site.
type AtomicLogger struct {
	ptr atomic.Pointer[slog.Logger]
}

// Get returns the current logger.
func (l *AtomicLogger) Get() *slog.Logger {
	return l.ptr.Load()
}

// Store replaces the current logger.
func (l *AtomicLogger) Store(logger *slog.Logger) {
	l.ptr.Store(logger)
}

// setupLogger builds the process logger from the logging config.
func (app *Application) setupLogger() error {
	app.logger = &AtomicLogger{}
	app.logger.Store(newLogger(app.config.Logging))
	return nil
}

// newLogger builds an slog.Logger for the given logging config.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// slogAdapter exposes the atomic logger through the domain logger
// interface. Each call reads the current logger so logging config reloads
// apply immediately.
type slogAdapter struct {
	logger *AtomicLogger
}

func (a *slogAdapter) Debug(msg string, keysAndValues ...any) {
	a.logger.Get().Debug(msg, keysAndValues...)
}

func (a *slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Get().Info(msg, keysAndValues...)
}

func (a *slogAdapter) Warn(msg string, keysAndValues ...any) {
	a.logger.Get().Warn(msg, keysAndValues...)
}

func (a *slogAdapter) Error(msg string, keysAndValues ...any) {
	a.logger.Get().Error(msg, keysAndValues...)
}

// domainLogger adapts the application's logger for layers that depend on
// the domain logger interface.
func (app *Application) domainLogger() logger.Logger {
	return &slogAdapter{logger: app.logger}
}
