// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Stdio MCP server exposing stack detection as a tool

package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sony-level/stackscan/internal/fetcher"
	"github.com/sony-level/stackscan/internal/report"
	"github.com/sony-level/stackscan/internal/scanner"
	"github.com/sony-level/stackscan/internal/stacks"
	"github.com/sony-level/stackscan/internal/workspace"
)

// ServerName is advertised during the MCP handshake
const ServerName = "stackscan"

// DetectStackTool is the name of the detection tool
const DetectStackTool = "detect_stack"

// Server wraps an MCP server backed by one detector registry
type Server struct {
	mcp      *server.MCPServer
	registry *stacks.Registry
	options  scanner.Options
	fetcher  *fetcher.Fetcher
	logger   *slog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithRegistry replaces the default detector registry
func WithRegistry(r *stacks.Registry) Option {
	return func(s *Server) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithScanOptions sets the options used when a call omits min_confidence
func WithScanOptions(opts scanner.Options) Option {
	return func(s *Server) {
		s.options = opts
	}
}

// WithLogger sets the server logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates the server and registers its tools
func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		options: scanner.DefaultOptions(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = stacks.NewDefaultRegistry(stacks.WithLogger(s.logger))
	}
	s.fetcher = fetcher.New(fetcher.WithLogger(s.logger))

	s.mcp = server.NewMCPServer(ServerName, version, server.WithToolCapabilities(true))
	s.mcp.AddTools(s.detectStackTool())
	return s
}

// MCPServer returns the underlying server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio blocks serving requests on stdin/stdout
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) detectStackTool() server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool(DetectStackTool,
			mcp.WithDescription("Detect the technology stack of a JavaScript/TypeScript project: "+
				"framework, package manager, testing, styling, data layer, services, deployment and MCP servers"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Project directory, or a GitHub/GitLab repository URL"),
			),
			mcp.WithNumber("min_confidence",
				mcp.Description("Drop results below this confidence (0-100, default 40; 0 keeps everything)"),
			),
			mcp.WithString("format",
				mcp.Description("Result format"),
				mcp.Enum(report.FormatJSON, report.FormatText),
			),
		),
		Handler: s.handleDetectStack,
	}
}

func (s *Server) handleDetectStack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	opts := s.options
	if raw, ok := args["min_confidence"]; ok {
		n, ok := raw.(float64)
		if !ok || n < stacks.MinConfidence || n > stacks.MaxConfidence {
			return mcp.NewToolResultError("min_confidence must be a number between 0 and 100"), nil
		}
		opts.MinConfidence = int(n)
		opts.IncludeLowConfidence = n == 0
	}

	format := report.FormatJSON
	if raw, ok := args["format"].(string); ok && raw != "" {
		if !report.ValidFormat(raw) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", raw)), nil
		}
		format = raw
	}

	src, release, err := s.fetcher.Checkout(ctx, path, workspace.Config{})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to resolve project", err), nil
	}
	defer func() {
		if err := release(); err != nil {
			s.logger.Warn("workspace cleanup failed", "error", err)
		}
	}()

	sc := scanner.New(opts, scanner.WithRegistry(s.registry), scanner.WithLogger(s.logger))
	result, err := sc.Scan(ctx, src.Root)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("scan failed", err), nil
	}
	if src.Cloned {
		result.ProjectRoot = src.Source
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, result, format, report.TextOptions{Evidence: true}); err != nil {
		return mcp.NewToolResultErrorFromErr("failed to render result", err), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
