package app

import (
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/alertmanager"
)

// Clients holds all external integration clients
type Clients struct {
	Alertmanager *alertmanager.Client
}

func (app *Application) initializeClients() error {
	amClient, err := alertmanager.NewClient(
		app.config.Alertmanager.URL,
		time.Duration(app.config.Alertmanager.Timeout),
		app.telemetry.Metrics,
	)
	if err != nil {
		return err
	}

	app.clients = &Clients{
		Alertmanager: amClient,
	}

	app.logger.Get().Info("alertmanager client initialized",
		"url", app.config.Alertmanager.URL,
		"timeout", time.Duration(app.config.Alertmanager.Timeout).String(),
	)

	return nil
}
