package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// reloadableKeys lists the configuration keys that can change at runtime
// without a restart. Everything else is consumed once during bootstrap.
var reloadableKeys = map[string]bool{
	"logging.level":            true,
	"logging.format":           true,
	"mattermost.tokens":        true,
	"mattermost.allowed_users": true,
}

// staticKeys maps non-reloadable keys to the reason a restart is required.
var staticKeys = map[string]string{
	"server.host":               "HTTP listener is bound once at startup",
	"server.port":               "HTTP listener is bound once at startup",
	"server.read_timeout":       "HTTP server timeouts are fixed at startup",
	"server.write_timeout":      "HTTP server timeouts are fixed at startup",
	"server.request_timeout":    "request timeout middleware is built at startup",
	"server.shutdown_timeout":   "shutdown sequence is configured at startup",
	"alertmanager.url":          "Alertmanager client is constructed at startup",
	"alertmanager.timeout":      "Alertmanager client is constructed at startup",
	"slack.enabled":             "routes are registered once at startup",
	"slack.signing_secret":      "signature verification middleware is built at startup",
	"silence.created_by_prefix": "silence use case is constructed at startup",
}

// IsReloadable reports whether the given dotted key may change without a
// restart.
func IsReloadable(key string) bool {
	return reloadableKeys[key]
}

// getRestartReason returns a human-readable reason why the given key cannot
// be hot reloaded.
func getRestartReason(key string) string {
	if reason, ok := staticKeys[key]; ok {
		return reason
	}
	return "unknown configuration key"
}

// ValidateLogLevel checks if the log level is valid.
func ValidateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log level %q: must be one of %s", level, strings.Join(validLevels, ", "))
}

// ValidateLogFormat checks if the log format is valid.
func ValidateLogFormat(format string) error {
	validFormats := []string{"json", "text"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log format %q: must be one of %s", format, strings.Join(validFormats, ", "))
}

// ValidateNonEmpty checks that a required string value is set.
func ValidateNonEmpty(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must not be empty", key)
	}
	return nil
}

// ValidateDuration checks that a duration value is positive.
func ValidateDuration(key string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return nil
}

// ValidatePort checks that a port number is in the valid range.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}

// ValidateURL checks that a URL is absolute with an http or https scheme.
func ValidateURL(key, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, rawURL)
	}
	return nil
}

// Validate performs a full validation of the configuration, collecting all
// problems instead of stopping at the first.
func (c *Config) Validate() error {
	var errs []string

	// Server
	if err := ValidateNonEmpty("server.host", c.Server.Host); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidatePort(c.Server.Port); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateDuration("server.read_timeout", time.Duration(c.Server.ReadTimeout)); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateDuration("server.write_timeout", time.Duration(c.Server.WriteTimeout)); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateDuration("server.request_timeout", time.Duration(c.Server.RequestTimeout)); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateDuration("server.shutdown_timeout", time.Duration(c.Server.ShutdownTimeout)); err != nil {
		errs = append(errs, err.Error())
	}

	// The request timeout must fire before the server's write timeout cuts
	// the connection, otherwise clients see dropped connections instead of
	// 504 responses.
	if time.Duration(c.Server.RequestTimeout) >= time.Duration(c.Server.WriteTimeout) {
		errs = append(errs, fmt.Sprintf(
			"server.request_timeout (%s) must be less than server.write_timeout (%s)",
			time.Duration(c.Server.RequestTimeout), time.Duration(c.Server.WriteTimeout)))
	}

	// Alertmanager
	if err := ValidateURL("alertmanager.url", c.Alertmanager.URL); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateDuration("alertmanager.timeout", time.Duration(c.Alertmanager.Timeout)); err != nil {
		errs = append(errs, err.Error())
	}

	// Slack
	if c.Slack.Enabled {
		if err := ValidateNonEmpty("slack.signing_secret", c.Slack.SigningSecret); err != nil {
			errs = append(errs, err.Error())
		}
	}

	// Silence
	if err := ValidateNonEmpty("silence.created_by_prefix", c.Silence.CreatedByPrefix); err != nil {
		errs = append(errs, err.Error())
	}

	// Logging
	if err := ValidateLogLevel(strings.ToLower(c.Logging.Level)); err != nil {
		errs = append(errs, err.Error())
	}
	if err := ValidateLogFormat(strings.ToLower(c.Logging.Format)); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:%s", joinErrors(errs))
	}
	return nil
}

// joinErrors formats a list of validation errors as indented bullets.
func joinErrors(errs []string) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString("\n  - ")
		sb.WriteString(e)
	}
	return sb.String()
}
