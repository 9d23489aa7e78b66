package logger

// Logger defines the contract for logging within use cases and handlers.
// Keeps domain and application code decoupled from the concrete slog setup.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
