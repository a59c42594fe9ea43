// Package core holds the runtime settings shared by every front end.
package core

import "time"

// RuntimeConfig contains configuration passed to a front end when a game starts.
type RuntimeConfig struct {
	Width  int    // Terminal width in characters
	Height int    // Terminal height in characters
	Prompt string // Prompt shown before each command
	Seed   int64  // RNG seed for deterministic gameplay, 0 = time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:  80,
		Height: 24,
		Prompt: "> ",
		Seed:   0, // 0 means use current time
	}
}

// ResolveSeed returns the configured seed, or a time-based one when it is 0.
func (c RuntimeConfig) ResolveSeed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}
