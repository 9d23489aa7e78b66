package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/common/model"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 7788 {
		t.Errorf("expected default port 7788, got %d", cfg.Server.Port)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 10*time.Second {
		t.Errorf("expected default read timeout 10s, got %s", time.Duration(cfg.Server.ReadTimeout))
	}
	if time.Duration(cfg.Server.WriteTimeout) != 30*time.Second {
		t.Errorf("expected default write timeout 30s, got %s", time.Duration(cfg.Server.WriteTimeout))
	}
	if time.Duration(cfg.Server.RequestTimeout) != 15*time.Second {
		t.Errorf("expected default request timeout 15s, got %s", time.Duration(cfg.Server.RequestTimeout))
	}
	if cfg.Alertmanager.URL != "http://alertmanager:9093" {
		t.Errorf("expected default alertmanager url, got %s", cfg.Alertmanager.URL)
	}
	if time.Duration(cfg.Alertmanager.Timeout) != 10*time.Second {
		t.Errorf("expected default alertmanager timeout 10s, got %s", time.Duration(cfg.Alertmanager.Timeout))
	}
	if cfg.Silence.CreatedByPrefix != "silence-bridge" {
		t.Errorf("expected default created_by_prefix silence-bridge, got %s", cfg.Silence.CreatedByPrefix)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected default log format json, got %s", cfg.Logging.Format)
	}
	if len(cfg.Mattermost.Tokens) != 0 {
		t.Errorf("expected no default tokens, got %v", cfg.Mattermost.Tokens)
	}
	if cfg.IsSlackEnabled() {
		t.Error("expected slack disabled by default")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected missing file to fall back to defaults, got %v", err)
	}
	if cfg.Server.Port != 7788 {
		t.Errorf("expected default port 7788, got %d", cfg.Server.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9000
  read_timeout: 5s
  write_timeout: 20s
  request_timeout: 10s
  shutdown_timeout: 15s
alertmanager:
  url: http://localhost:9093
  timeout: 3s
mattermost:
  tokens:
    - tok-one
    - tok-two
  allowed_users:
    - alice
    - bob
slack:
  enabled: true
  signing_secret: shhh
silence:
  created_by_prefix: ops-bot
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %s", time.Duration(cfg.Server.ReadTimeout))
	}
	if time.Duration(cfg.Alertmanager.Timeout) != 3*time.Second {
		t.Errorf("expected alertmanager timeout 3s, got %s", time.Duration(cfg.Alertmanager.Timeout))
	}
	if len(cfg.Mattermost.Tokens) != 2 || cfg.Mattermost.Tokens[0] != "tok-one" || cfg.Mattermost.Tokens[1] != "tok-two" {
		t.Errorf("unexpected tokens: %v", cfg.Mattermost.Tokens)
	}
	if len(cfg.Mattermost.AllowedUsers) != 2 || cfg.Mattermost.AllowedUsers[0] != "alice" {
		t.Errorf("unexpected allowed users: %v", cfg.Mattermost.AllowedUsers)
	}
	if !cfg.IsSlackEnabled() {
		t.Error("expected slack enabled")
	}
	if cfg.Slack.SigningSecret != "shhh" {
		t.Errorf("unexpected signing secret: %s", cfg.Slack.SigningSecret)
	}
	if cfg.Silence.CreatedByPrefix != "ops-bot" {
		t.Errorf("expected created_by_prefix ops-bot, got %s", cfg.Silence.CreatedByPrefix)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
alertmanager:
  url: http://from-file:9093
logging:
  level: info
`)

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("ALERTMANAGER_URL", "http://from-env:9093")
	t.Setenv("MATTERMOST_TOKENS", "tok-a, tok-b ,tok-c")
	t.Setenv("ALLOWED_USERS", "carol,dave")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected env to override port, got %d", cfg.Server.Port)
	}
	if cfg.Alertmanager.URL != "http://from-env:9093" {
		t.Errorf("expected env to override alertmanager url, got %s", cfg.Alertmanager.URL)
	}
	want := []string{"tok-a", "tok-b", "tok-c"}
	if len(cfg.Mattermost.Tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), cfg.Mattermost.Tokens)
	}
	for i, tok := range want {
		if cfg.Mattermost.Tokens[i] != tok {
			t.Errorf("token %d: expected %q, got %q", i, tok, cfg.Mattermost.Tokens[i])
		}
	}
	if len(cfg.Mattermost.AllowedUsers) != 2 || cfg.Mattermost.AllowedUsers[1] != "dave" {
		t.Errorf("unexpected allowed users: %v", cfg.Mattermost.AllowedUsers)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env to override log level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	t.Setenv("AM_HOST", "am.internal")
	path := writeConfigFile(t, `
alertmanager:
  url: http://${AM_HOST}:9093
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Alertmanager.URL != "http://am.internal:9093" {
		t.Errorf("expected env expansion in file, got %s", cfg.Alertmanager.URL)
	}
}

func TestLoad_SlackEnabledWithoutSecret(t *testing.T) {
	path := writeConfigFile(t, `
slack:
  enabled: true
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error when slack is enabled without a signing secret")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a map")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            70000,
			ReadTimeout:     model.Duration(10 * time.Second),
			WriteTimeout:    model.Duration(10 * time.Second),
			RequestTimeout:  model.Duration(15 * time.Second),
			ShutdownTimeout: model.Duration(30 * time.Second),
		},
		Alertmanager: AlertmanagerConfig{URL: "not-a-url", Timeout: model.Duration(10 * time.Second)},
		Silence:      SilenceConfig{CreatedByPrefix: "silence-bridge"},
		Logging:      LoggingConfig{Level: "info", Format: "json"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	msg := err.Error()
	for _, want := range []string{"invalid port 70000", "request_timeout", "alertmanager.url"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected validation error to mention %q, got:\n%s", want, msg)
		}
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestIsReloadable(t *testing.T) {
	reloadable := []string{"logging.level", "logging.format", "mattermost.tokens", "mattermost.allowed_users"}
	for _, key := range reloadable {
		if !IsReloadable(key) {
			t.Errorf("expected %s to be reloadable", key)
		}
	}

	static := []string{"server.port", "alertmanager.url", "slack.signing_secret", "silence.created_by_prefix"}
	for _, key := range static {
		if IsReloadable(key) {
			t.Errorf("expected %s to be static", key)
		}
		if getRestartReason(key) == "unknown configuration key" {
			t.Errorf("expected a restart reason for %s", key)
		}
	}
}
