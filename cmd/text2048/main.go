// text2048 is the 2048 sliding-tile puzzle played with typed commands.
//
// Usage:
//
//	text2048                 - Play in this terminal (same as "play")
//	text2048 play            - Play in this terminal
//	text2048 serve           - Host games over SSH and/or WebSocket
//	text2048 mcp             - Serve games as MCP tools on stdin/stdout
//	text2048 scores          - Show recorded results
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.text2048/config.yaml)
//	--seed <value>      - RNG seed for reproducible games
//	--db <path>         - Record results in this database
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/text2048/internal/config"
	"github.com/vovakirdan/text2048/internal/core"
	"github.com/vovakirdan/text2048/internal/registry"
	"github.com/vovakirdan/text2048/internal/storage"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Set by the root PersistentPreRunE
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "text2048",
	Short: "2048 played with text commands",
	Long: `text2048 is the 2048 sliding-tile puzzle driven by typed commands.

Slide the tiles with "move up", "move down", "move left" or "move right".
Equal tiles that collide merge into one of double value. Reach 2048 to win.

Available commands:
  play     - Play in this terminal (default)
  serve    - Host games over SSH and/or WebSocket
  mcp      - Serve games as MCP tools on stdin/stdout
  scores   - Show recorded results

Examples:
  text2048
  text2048 --seed 42
  text2048 serve --ssh :2222 --ws :8080
  text2048 scores --db ./scores.db`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Record results in this SQLite database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Enabled = true
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "text2048",
		Level:           level,
	})
	appConfig = cfg
	return nil
}

// openStore opens the score store when recording is enabled. Failures are
// logged and play continues without recording.
func openStore() *storage.Store {
	store, err := storage.OpenFromConfig(appConfig.Storage)
	if err != nil {
		if !errors.Is(err, storage.ErrStorageDisabled) {
			logger.Warn("results will not be recorded", "error", err)
		}
		return nil
	}
	return store
}

// newRegistry builds the session registry shared by every front end of
// this process.
func newRegistry(store *storage.Store, l *log.Logger) *registry.Registry {
	opts := []registry.Option{
		registry.WithSeed(runtimeConfig().ResolveSeed),
		registry.WithLogger(l),
	}
	if store != nil {
		opts = append(opts, registry.WithRecorder(store))
	}
	return registry.New(opts...)
}

// runtimeConfig returns the front-end settings derived from the configuration.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Prompt = appConfig.Prompt
	cfg.Seed = appConfig.Seed
	return cfg
}
