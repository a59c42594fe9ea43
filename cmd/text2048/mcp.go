package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/text2048/internal/transport/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve games as MCP tools on stdin/stdout",
	Long: `Start a Model Context Protocol server on stdin/stdout so that an
agent can play. Tools: new_game, move, command, game_state, end_game.

Logs go to stderr; stdout carries only protocol messages.

Example client configuration:
  {"command": "text2048", "args": ["mcp", "--seed", "42"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sessions := newRegistry(store, logger.WithPrefix("game"))
	server := mcp.NewServer(sessions, logger.WithPrefix("mcp"), version)

	if err := server.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
