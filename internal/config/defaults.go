package config

import (
	_ "embed"
)

//go:embed defaults/text2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Prompt: "> ",
		Seed:   0,
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Enabled: false,
			Path:    "~/.text2048/scores.db",
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
		WebSocket: WebSocketConfig{
			Path: "/play",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
