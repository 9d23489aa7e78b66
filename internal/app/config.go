package app

import (
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/config"
)

// loadConfig loads the startup configuration. Load validates the result, so
// a Config stored here is always internally consistent.
func (app *Application) loadConfig(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	app.config = cfg
	return nil
}

// setupConfigManager wires the hot-reload manager. Token and allow-list
// changes are picked up by the handlers through ConfigManager.Current;
// logging changes swap the process logger.
func (app *Application) setupConfigManager(configPath string) error {
	app.configManager = config.NewConfigManager(configPath, app.config, app.domainLogger())

	app.configManager.OnReload(func(oldCfg, newCfg *config.Config) {
		if oldCfg.Logging != newCfg.Logging {
			app.logger.Store(newLogger(newCfg.Logging))
			app.logger.Get().Info("logger reconfigured",
				"level", newCfg.Logging.Level,
				"format", newCfg.Logging.Format,
			)
		}
	})

	return nil
}
