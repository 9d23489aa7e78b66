package app

import (
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/handler"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/server"
)

func (app *Application) initializeHandlers() error {
	log := app.domainLogger()

	// Create readiness handler with dependency checkers
	readyHandler := handler.NewReadyHandler()
	readyHandler.AddChecker("alertmanager", app.clients.Alertmanager)

	app.handlers = &server.Handlers{
		Health:  handler.NewHealthHandler(observability.ServiceName, observability.ServiceVersion),
		Ready:   readyHandler,
		Reload:  handler.NewReloadHandler(app.configManager, log),
		Metrics: handler.NewMetricsHandler(),
	}

	// The allow list is read from the config manager on every request so
	// reloads take effect without a restart.
	allowedUsers := func() []string {
		return app.configManager.Current().Mattermost.AllowedUsers
	}

	app.handlers.MattermostCommands = handler.NewMattermostCommandsHandler(
		app.useCases.CreateSilence,
		allowedUsers,
		app.telemetry.Metrics,
		log,
	)

	// Slack handler (if enabled)
	if app.config.IsSlackEnabled() {
		app.handlers.SlackCommands = handler.NewSlackCommandsHandler(
			app.useCases.CreateSilence,
			allowedUsers,
			app.telemetry.Metrics,
			log,
		)
	}

	return nil
}

func (app *Application) setupServer() error {
	routerConfig := &server.RouterConfig{
		MattermostTokens: func() []string {
			return app.configManager.Current().Mattermost.Tokens
		},
		SlackSigningSecret: app.config.Slack.SigningSecret,
		RequestTimeout:     time.Duration(app.config.Server.RequestTimeout),
		Metrics:            app.telemetry.Metrics,
	}

	app.router = server.NewRouter(app.handlers, app.domainLogger(), routerConfig)
	app.server = server.New(app.config.Server, app.router, app.domainLogger())

	return nil
}
