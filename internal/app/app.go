package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/config"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/server"
)

// shutdownTimeout bounds the telemetry flush during Shutdown. The HTTP
// server drains separately under its own configured timeout.
const shutdownTimeout = 5 * time.Second

// Application wires configuration, telemetry, clients, use cases, and the
// HTTP stack, and owns their lifecycle.
type Application struct {
	config        *config.Config
	configManager *config.ConfigManager
	logger        *AtomicLogger
	telemetry     *observability.Telemetry

	clients  *Clients
	useCases *UseCases

	handlers *server.Handlers
	router   http.Handler
	server   *server.Server
}

// New builds a fully wired Application from the config file at configPath.
func New(configPath string) (*Application, error) {
	app := &Application{}

	if err := app.bootstrap(configPath); err != nil {
		return nil, err
	}

	return app, nil
}

// Start runs the application until context is cancelled
func (app *Application) Start(ctx context.Context) error {
	app.logger.Get().Info("starting silence-bridge",
		"addr", app.server.Addr(),
		"slack_enabled", app.config.IsSlackEnabled(),
	)

	// Config file watcher lives for the run context
	go func() {
		if err := app.configManager.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Get().Error("config watcher stopped", "error", err)
		}
	}()

	return app.server.Run(ctx)
}

// Shutdown flushes telemetry and stops the application.
func (app *Application) Shutdown() error {
	log := app.logger.Get()
	log.Info("shutting down silence-bridge")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown telemetry", "error", err)
			return err
		}
	}

	log.Info("silence-bridge stopped")
	return nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}
