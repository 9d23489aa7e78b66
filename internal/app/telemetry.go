package app

import (
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
)

// setupTelemetry wires the OTel meter and tracer providers. Metrics are
// exported through the Prometheus registry behind /metrics; tracing stays on
// the noop provider until an exporter is configured.
func (app *Application) setupTelemetry() error {
	telemetry, err := observability.NewTelemetry(observability.ServiceName, observability.ServiceVersion)
	if err != nil {
		return err
	}
	app.telemetry = telemetry

	app.logger.Get().Info("telemetry initialized", "service", observability.ServiceName)
	return nil
}
