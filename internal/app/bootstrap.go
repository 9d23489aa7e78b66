package app

import (
	"fmt"
)

// bootstrap wires the application in dependency order: configuration and
// logging first, then telemetry, the Alertmanager client, use cases,
// handlers and the HTTP server.
func (app *Application) bootstrap(configPath string) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"loading config", func() error { return app.loadConfig(configPath) }},
		{"setting up logger", app.setupLogger},
		{"setting up telemetry", app.setupTelemetry},
		{"setting up config manager", func() error { return app.setupConfigManager(configPath) }},
		{"initializing clients", app.initializeClients},
		{"initializing use cases", app.initializeUseCases},
		{"initializing handlers", app.initializeHandlers},
		{"setting up server", app.setupServer},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}
