// Package mcp exposes games as Model Context Protocol tools so that agents
// can play through the same command set as people.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/text2048/internal/command"
	"github.com/vovakirdan/text2048/internal/registry"
	"github.com/vovakirdan/text2048/internal/t2048"
)

const msgAlreadyEnded = "The game had already ended."

// Server is the MCP front end. Games live in a session registry and are
// addressed by session_id on every call.
type Server struct {
	sessions  *registry.Registry
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server with all tools registered.
func NewServer(sessions *registry.Registry, logger *log.Logger, version string) *Server {
	s := &Server{
		sessions: sessions,
		logger:   logger,
	}

	s.mcpServer = server.NewMCPServer(
		"text2048",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`text2048 - a 2048 sliding-tile puzzle played with text commands.

The 4x4 grid holds tiles that are powers of two. Each move slides every tile
in one direction; two equal tiles that collide merge into one of double value
and add that value to the score. After every move that changes the grid a new
2 (or, rarely, 4) appears. Reach a 2048 tile to win; the game is lost when the
grid is full and no neighbours are equal.

AVAILABLE TOOLS:
- new_game: start a game and get its session_id
- move: slide the tiles up, down, left or right
- command: send a raw text command (move <dir>, look, score, help, panic, quit)
- game_state: get the board, score and state as JSON
- end_game: give up and discard the session (games that end on their own are
  discarded automatically)`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by new_game",
	}
}

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game with two tiles on an empty grid",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to slide",
					"enum":        []string{"up", "down", "left", "right"},
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "command",
		Description: "Send a text command to the game, exactly as a player would type it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Command line, e.g. 'move up' or 'look'",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, s.handleCommand)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, score, move count and state of a game as JSON",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "Give up a game (if still running) and discard its session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleEndGame)
}

// stringArg reads a string argument; missing or mistyped arguments yield "".
func stringArg(request mcp.CallToolRequest, name string) string {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return ""
	}
	v, _ := args[name].(string)
	return v
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, session := s.sessions.Create()
	s.logger.Info("mcp game started", "session", id)

	return mcp.NewToolResultText(fmt.Sprintf("session_id: %s\n%s", id, session.Look())), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := s.sessions.Get(stringArg(request, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dir, err := t2048.ParseDirection(stringArg(request, "direction"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.settle(session, session.Move(dir))), nil
}

func (s *Server) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := s.sessions.Get(stringArg(request, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.settle(session, session.Process(stringArg(request, "command")))), nil
}

// settle drops the session once its game has ended and returns the reply text.
func (s *Server) settle(session *command.Session, reply command.Reply) string {
	if reply.Stop {
		s.sessions.Remove(session.ID())
		s.logger.Info("mcp game ended", "session", session.ID())
	}
	return reply.Text
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := s.sessions.Get(stringArg(request, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(session.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal snapshot: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request, "session_id")
	if id == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	session, err := s.sessions.Get(id)
	if errors.Is(err, registry.ErrSessionNotFound) {
		return mcp.NewToolResultText(msgAlreadyEnded), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := msgAlreadyEnded
	if _, done := session.Done(); !done {
		text = session.Process("quit").Text
	}

	s.sessions.Remove(id)
	s.logger.Info("mcp game ended", "session", id)

	return mcp.NewToolResultText(text), nil
}
