package server

import (
	"net/http"
	"time"

	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/handler"
	"github.com/qj0r9j0vc2/silence-bridge/internal/adapter/handler/middleware"
	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/observability"
)

// Handlers holds all HTTP handlers.
type Handlers struct {
	MattermostCommands *handler.MattermostCommandsHandler
	SlackCommands      *handler.SlackCommandsHandler
	Health             *handler.HealthHandler
	Ready              *handler.ReadyHandler
	Metrics            *handler.MetricsHandler
	Reload             *handler.ReloadHandler
}

// RouterConfig carries the cross-cutting settings the router needs to build
// its middleware stack.
type RouterConfig struct {
	// MattermostTokens supplies the currently configured slash-command
	// tokens. It is consulted per request so token rotation applies
	// without a restart.
	MattermostTokens func() []string

	// SlackSigningSecret verifies Slack request signatures. Empty skips
	// verification.
	SlackSigningSecret string

	// RequestTimeout bounds webhook request handling. Zero disables the
	// timeout middleware.
	RequestTimeout time.Duration

	Metrics *observability.Metrics
}

// NewRouter creates the HTTP router with all handlers and the middleware
// stack.
func NewRouter(handlers *Handlers, log logger.Logger, cfg *RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// Operational endpoints
	mux.Handle("/health", handlers.Health)
	mux.Handle("/", handlers.Health) // Root path returns health

	if handlers.Ready != nil {
		mux.Handle("/ready", handlers.Ready)
	}
	if handlers.Metrics != nil {
		mux.Handle("/metrics", handlers.Metrics)
	}
	if handlers.Reload != nil {
		mux.Handle("/-/reload", handlers.Reload)
	}

	// Webhook endpoints, each behind its platform's authentication
	if handlers.MattermostCommands != nil {
		var h http.Handler = handlers.MattermostCommands
		h = middleware.MattermostAuth(cfg.MattermostTokens, log)(h)
		mux.Handle("/webhook/mattermost/command", h)
	}

	if handlers.SlackCommands != nil {
		var h http.Handler = handlers.SlackCommands
		h = middleware.SlackAuth(cfg.SlackSigningSecret, log)(h)
		mux.Handle("/webhook/slack/command", h)
	}

	// Apply middleware stack. Wrapping order is inside out: the request
	// passes Recovery, RequestID, Logging, Observability, Timeout, then
	// reaches the mux.
	var h http.Handler = mux
	if cfg.RequestTimeout > 0 {
		h = middleware.Timeout(cfg.RequestTimeout, log)(h)
	}
	if cfg.Metrics != nil {
		h = middleware.Observability(cfg.Metrics)(h)
	}
	h = middleware.Logging(log)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(log)(h)

	return h
}
