// Package mcp exposes the gateway's tools over the Model Context Protocol,
// on stdio and on a per-request HTTP endpoint.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/opsmcp"
	"github.com/aretw0/opsmcp/pkg/contract"
	"github.com/aretw0/opsmcp/pkg/envelope"
)

// ServerName is reported to clients during initialization.
const ServerName = "opsmcp"

// ResultKey holds Core payloads that are not JSON objects inside a tool's
// structured content, which must itself be an object.
const ResultKey = "result"

// Dispatcher is the part of the gateway the MCP binding needs.
type Dispatcher interface {
	Tools() []contract.ToolContract
	Dispatch(ctx context.Context, name string, args map[string]any) (envelope.Envelope, error)
}

// Server wraps a dispatcher as an MCP server.
type Server struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// NewServer registers one MCP tool per contract known to d.
func NewServer(d Dispatcher, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		dispatcher: d,
		logger:     logger,
		mcpServer: server.NewMCPServer(ServerName, opsmcp.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is
// cancelled or in reaches EOF.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.New(slogWriter{s.logger}, "", 0))
	return stdio.Listen(ctx, in, out)
}

// HandleMessage processes one raw JSON-RPC message. It returns nil for
// notifications.
func (s *Server) HandleMessage(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, raw)
}

func (s *Server) registerTools() error {
	for _, c := range s.dispatcher.Tools() {
		inputSchema, err := c.Input.RawJSONSchema()
		if err != nil {
			return fmt.Errorf("input schema for %s: %w", c.Name, err)
		}
		tool := mcp.NewToolWithRawSchema(c.Name, c.Description, inputSchema)
		tool.Annotations = mcp.ToolAnnotation{
			Title:           c.Title,
			ReadOnlyHint:    mcp.ToBoolPtr(!c.Mutating),
			DestructiveHint: mcp.ToBoolPtr(c.Mutating && c.Method != http.MethodPost),
			OpenWorldHint:   mcp.ToBoolPtr(true),
		}
		tool.OutputSchema = outputSchema(c.Output)
		s.mcpServer.AddTool(tool, s.handler(c.Name))
	}
	return nil
}

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		env, err := s.dispatcher.Dispatch(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultStructured(structuredContent(env.Structured), env.Text), nil
	}
}

// structuredContent returns objects as they are and wraps anything else,
// including an empty response, under ResultKey.
func structuredContent(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{ResultKey: v}
}

// outputSchema declares what structuredContent produces for a tool with
// the given output shape. Empty responses arrive as a null result.
func outputSchema(o contract.OutputShape) mcp.ToolOutputSchema {
	if o.Kind == contract.OutputObject {
		return mcp.ToolOutputSchema{Type: "object"}
	}
	result := map[string]any{}
	if o.Description != "" {
		result["description"] = o.Description
	}
	if o.Kind == contract.OutputArray {
		result["type"] = []string{"array", "null"}
	}
	return mcp.ToolOutputSchema{
		Type:       "object",
		Properties: map[string]any{ResultKey: result},
	}
}

// slogWriter routes the stdio server's internal error log into slog.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	w.logger.Error("mcp stdio", "detail", string(trimNewline(p)))
	return len(p), nil
}

func trimNewline(p []byte) []byte {
	for len(p) > 0 && (p[len(p)-1] == '\n' || p[len(p)-1] == '\r') {
		p = p[:len(p)-1]
	}
	return p
}
