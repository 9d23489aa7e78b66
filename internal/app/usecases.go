package app

import (
	"github.com/qj0r9j0vc2/silence-bridge/internal/usecase/silence"
)

// UseCases holds all application use cases
type UseCases struct {
	CreateSilence *silence.CreateSilenceUseCase
}

func (app *Application) initializeUseCases() error {
	app.useCases = &UseCases{
		CreateSilence: silence.NewCreateSilenceUseCase(
			app.clients.Alertmanager,
			app.config.Silence.CreatedByPrefix,
			app.domainLogger(),
		),
	}

	return nil
}
