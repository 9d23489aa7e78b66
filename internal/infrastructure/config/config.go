package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Alertmanager AlertmanagerConfig `yaml:"alertmanager"`
	Mattermost   MattermostConfig   `yaml:"mattermost"`
	Slack        SlackConfig        `yaml:"slack"`
	Silence      SilenceConfig      `yaml:"silence"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// ServerConfig holds HTTP server settings. Durations use the Prometheus
// notation, e.g. "30s" or "1m".
type ServerConfig struct {
	Host            string         `yaml:"host"`
	Port            int            `yaml:"port"`
	ReadTimeout     model.Duration `yaml:"read_timeout"`
	WriteTimeout    model.Duration `yaml:"write_timeout"`
	RequestTimeout  model.Duration `yaml:"request_timeout"`
	ShutdownTimeout model.Duration `yaml:"shutdown_timeout"`
}

// AlertmanagerConfig holds the connection settings for the silencing API.
type AlertmanagerConfig struct {
	URL     string         `yaml:"url"`
	Timeout model.Duration `yaml:"timeout"`
}

// MattermostConfig holds Mattermost integration settings. Tokens are the
// slash-command tokens Mattermost generated for this webhook; AllowedUsers
// restricts who may create silences, with an empty list admitting everyone.
type MattermostConfig struct {
	Tokens       []string `yaml:"tokens"`
	AllowedUsers []string `yaml:"allowed_users"`
}

// SlackConfig holds Slack integration settings.
type SlackConfig struct {
	Enabled       bool   `yaml:"enabled"`
	SigningSecret string `yaml:"signing_secret"`
}

// SilenceConfig holds silence creation settings.
type SilenceConfig struct {
	// CreatedByPrefix is prepended to the invoking username in the
	// silence's createdBy field, e.g. "silence-bridge:alice".
	CreatedByPrefix string `yaml:"created_by_prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the configuration file at path, applies environment overrides
// and defaults, and validates the result. A missing file is not an error;
// the environment plus defaults alone describe a complete configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile parses the YAML file at path into c, expanding ${VAR} references
// from the environment first. A nonexistent file leaves c untouched.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// overrideFromEnv overrides config values from environment variables.
func (c *Config) overrideFromEnv() {
	envString("SERVER_HOST", &c.Server.Host)
	envInt("SERVER_PORT", &c.Server.Port)

	envString("ALERTMANAGER_URL", &c.Alertmanager.URL)
	envDuration("ALERTMANAGER_TIMEOUT", &c.Alertmanager.Timeout)

	envList("MATTERMOST_TOKENS", &c.Mattermost.Tokens)
	envList("ALLOWED_USERS", &c.Mattermost.AllowedUsers)

	envBool("SLACK_ENABLED", &c.Slack.Enabled)
	envString("SLACK_SIGNING_SECRET", &c.Slack.SigningSecret)

	envString("SILENCE_CREATED_BY_PREFIX", &c.Silence.CreatedByPrefix)

	envString("LOG_LEVEL", &c.Logging.Level)
	envString("LOG_FORMAT", &c.Logging.Format)
}

// applyDefaults fills in default values for unset options.
func (c *Config) applyDefaults() {
	defaultString(&c.Server.Host, "0.0.0.0")
	if c.Server.Port == 0 {
		c.Server.Port = 7788
	}
	defaultDuration(&c.Server.ReadTimeout, 10*time.Second)
	defaultDuration(&c.Server.WriteTimeout, 30*time.Second)
	defaultDuration(&c.Server.RequestTimeout, 15*time.Second)
	defaultDuration(&c.Server.ShutdownTimeout, 30*time.Second)

	defaultString(&c.Alertmanager.URL, "http://alertmanager:9093")
	defaultDuration(&c.Alertmanager.Timeout, 10*time.Second)

	defaultString(&c.Silence.CreatedByPrefix, "silence-bridge")

	defaultString(&c.Logging.Level, "info")
	defaultString(&c.Logging.Format, "json")
}

// IsSlackEnabled returns true if Slack integration is enabled.
func (c *Config) IsSlackEnabled() bool {
	return c.Slack.Enabled
}

// envString overwrites dst when the named environment variable is set.
func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// envInt overwrites dst when the named environment variable holds an integer.
func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// envBool overwrites dst when the named environment variable is set. Any
// value other than "true" (case-insensitive) counts as false.
func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.EqualFold(v, "true")
	}
}

// envDuration overwrites dst when the named environment variable holds a
// Prometheus duration such as "30s".
func envDuration(key string, dst *model.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := model.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// envList overwrites dst when the named environment variable holds a
// comma-separated list.
func envList(key string, dst *[]string) {
	if v := os.Getenv(key); v != "" {
		*dst = splitAndTrim(v)
	}
}

// splitAndTrim splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func defaultDuration(dst *model.Duration, def time.Duration) {
	if *dst == 0 {
		*dst = model.Duration(def)
	}
}
