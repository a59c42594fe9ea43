// Package config provides YAML-based configuration loading for text2048.
package config

import "time"

// Config contains all runtime configuration.
type Config struct {
	Prompt    string          `yaml:"prompt"`
	Seed      int64           `yaml:"seed"` // 0 = time-based
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	SSH       SSHConfig       `yaml:"ssh"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig defines where finished games are recorded.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SSHConfig defines the SSH front end.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// WebSocketConfig defines the WebSocket front end. An empty address disables it.
type WebSocketConfig struct {
	Address string `yaml:"address"`
	Path    string `yaml:"path"`
}
