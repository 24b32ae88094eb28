// Package mcpserver serves toolbox tools over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/germanamz/genai/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger logs every tool call to log.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// Server exposes tools to MCP clients.
type Server struct {
	server *mcp.Server
	log    *slog.Logger
	names  []string
}

// New creates a Server advertising name and version.
func New(name, version string, opts ...Option) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register adds tools to the server.
func (s *Server) Register(tools ...toolbox.Tool) {
	for _, t := range tools {
		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.handler(t))
		s.names = append(s.names, t.Name)
	}
}

// RegisterToolBox adds every tool of tb in name order. Calls are dispatched
// through tb.Call.
func (s *Server) RegisterToolBox(tb *toolbox.ToolBox) {
	for _, t := range tb.Tools() {
		name := t.Name
		t.Handler = func(ctx context.Context, input json.RawMessage) (string, error) {
			return tb.Call(ctx, name, input)
		}
		s.Register(t)
	}
}

// Names returns the registered tool names in registration order.
func (s *Server) Names() []string { return append([]string(nil), s.names...) }

// Serve reads requests from in and writes responses to out until ctx is
// cancelled or the peer disconnects.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.run(ctx, &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	})
}

func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	s.log.Info("mcp server started", "tools", s.names)
	return s.server.Run(ctx, transport)
}

// handler adapts a toolbox handler. Tool failures become IsError results
// so the client sees the message instead of a protocol error.
func (s *Server) handler(t toolbox.Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if len(args) == 0 {
			args = json.RawMessage("{}")
		}

		start := time.Now()
		result, err := t.Handler(ctx, args)
		if err != nil {
			s.log.Warn("tool call failed", "tool", t.Name, "duration", time.Since(start), "error", err)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		s.log.Debug("tool call", "tool", t.Name, "duration", time.Since(start))

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result}},
		}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
