package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
)

// ErrRequiresRestart is returned by TryReload when the changed keys include
// at least one static key. The running configuration is left untouched.
var ErrRequiresRestart = errors.New("configuration change requires restart")

// ReloadCallback receives the previous and the freshly applied configuration
// after a successful reload.
type ReloadCallback func(oldCfg, newCfg *Config)

// ConfigManager serves the current configuration to the rest of the
// application and applies hot reloads for the reloadable subset of keys.
type ConfigManager struct {
	mu        sync.RWMutex
	path      string
	current   *Config
	callbacks []ReloadCallback
	logger    logger.Logger
}

// NewConfigManager wraps an already loaded configuration.
func NewConfigManager(path string, cfg *Config, log logger.Logger) *ConfigManager {
	return &ConfigManager{
		path:    path,
		current: cfg,
		logger:  log,
	}
}

// Current returns the most recently applied configuration. The returned
// pointer must be treated as read-only.
func (m *ConfigManager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// OnReload registers a callback invoked after each successful reload.
// Callbacks run outside the manager's lock, in registration order.
func (m *ConfigManager) OnReload(cb ReloadCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// TryReload re-reads the configuration file and applies it when only
// reloadable keys changed. A no-op reload is not an error. Any static key
// change returns ErrRequiresRestart without applying anything. Load performs
// full validation, so an invalid file never reaches the diff.
func (m *ConfigManager) TryReload() error {
	newCfg, err := Load(m.path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m.mu.Lock()
	oldCfg := m.current
	changed := diffKeys(oldCfg, newCfg)
	if len(changed) == 0 {
		m.mu.Unlock()
		m.logger.Info("config reload requested, no changes detected")
		return nil
	}

	for _, key := range changed {
		if !IsReloadable(key) {
			m.mu.Unlock()
			m.logger.Warn("config change requires restart",
				"key", key,
				"reason", getRestartReason(key),
			)
			return ErrRequiresRestart
		}
	}

	m.current = newCfg
	callbacks := slices.Clone(m.callbacks)
	m.mu.Unlock()

	m.logger.Info("configuration reloaded", "changed_keys", changed)

	for _, cb := range callbacks {
		cb(oldCfg, newCfg)
	}
	return nil
}

// Watch blocks until ctx is cancelled, reloading the configuration whenever
// the file changes on disk. Editors and orchestrators tend to replace the
// file rather than write it in place, so the watch covers the parent
// directory and filters events by file name.
func (m *ConfigManager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	base := filepath.Base(m.path)
	m.logger.Info("watching config file for changes", "path", m.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := m.TryReload(); err != nil {
				if errors.Is(err, ErrRequiresRestart) {
					continue
				}
				m.logger.Error("automatic config reload failed", "error", err.Error())
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Error("config watcher error", "error", watchErr.Error())
		}
	}
}

// diffKeys returns the dotted names of keys whose values differ between two
// configurations. Every key listed here must appear in either reloadableKeys
// or staticKeys.
func diffKeys(oldCfg, newCfg *Config) []string {
	var changed []string

	if oldCfg.Server.Host != newCfg.Server.Host {
		changed = append(changed, "server.host")
	}
	if oldCfg.Server.Port != newCfg.Server.Port {
		changed = append(changed, "server.port")
	}
	if oldCfg.Server.ReadTimeout != newCfg.Server.ReadTimeout {
		changed = append(changed, "server.read_timeout")
	}
	if oldCfg.Server.WriteTimeout != newCfg.Server.WriteTimeout {
		changed = append(changed, "server.write_timeout")
	}
	if oldCfg.Server.RequestTimeout != newCfg.Server.RequestTimeout {
		changed = append(changed, "server.request_timeout")
	}
	if oldCfg.Server.ShutdownTimeout != newCfg.Server.ShutdownTimeout {
		changed = append(changed, "server.shutdown_timeout")
	}

	if oldCfg.Alertmanager.URL != newCfg.Alertmanager.URL {
		changed = append(changed, "alertmanager.url")
	}
	if oldCfg.Alertmanager.Timeout != newCfg.Alertmanager.Timeout {
		changed = append(changed, "alertmanager.timeout")
	}

	if !slices.Equal(oldCfg.Mattermost.Tokens, newCfg.Mattermost.Tokens) {
		changed = append(changed, "mattermost.tokens")
	}
	if !slices.Equal(oldCfg.Mattermost.AllowedUsers, newCfg.Mattermost.AllowedUsers) {
		changed = append(changed, "mattermost.allowed_users")
	}

	if oldCfg.Slack.Enabled != newCfg.Slack.Enabled {
		changed = append(changed, "slack.enabled")
	}
	if oldCfg.Slack.SigningSecret != newCfg.Slack.SigningSecret {
		changed = append(changed, "slack.signing_secret")
	}

	if oldCfg.Silence.CreatedByPrefix != newCfg.Silence.CreatedByPrefix {
		changed = append(changed, "silence.created_by_prefix")
	}

	if oldCfg.Logging.Level != newCfg.Logging.Level {
		changed = append(changed, "logging.level")
	}
	if oldCfg.Logging.Format != newCfg.Logging.Format {
		changed = append(changed, "logging.format")
	}

	return changed
}
