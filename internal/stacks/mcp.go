// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Model Context Protocol detectors

package stacks

import (
	"context"
	"strings"

	"go.uber.org/multierr"

	"github.com/sony-level/stackscan/internal/evidence"
)

// MCP detector names and priorities
const (
	MCPConfigName    = "mcp-config"
	MCPProjectName   = "mcp-project"
	MCPRecommendName = "mcp-recommendations"

	// ConfiguredServerConfidence is assigned to every declared server
	ConfiguredServerConfidence = 90
)

// Project role names
const (
	MCPServerRole = "MCP Server"
	MCPClientRole = "MCP Client"
)

// MCPEntryFiles are scanned for server or client construction
var MCPEntryFiles = []string{"src/index.ts", "src/server.ts", "index.ts", "index.js", "server.js", "src/index.js"}

var (
	mcpServerMarkers = []string{"McpServer", "new Server(", "StdioServerTransport"}
	mcpClientMarkers = []string{"new Client(", "StdioClientTransport"}
)

// MCPConfigDetector reports servers declared in MCP client config files
type MCPConfigDetector struct {
	BaseDetector
}

// NewMCPConfigDetector creates the configured-servers detector
func NewMCPConfigDetector() *MCPConfigDetector {
	return &MCPConfigDetector{BaseDetector: NewBaseDetector(CategoryMCP, MCPConfigName, 100)}
}

// Detect parses every config file present. The first declaration of a name
// wins. Unreadable files are skipped and reported alongside the servers
// found in the others.
func (d *MCPConfigDetector) Detect(ctx context.Context, p *evidence.Project) ([]DetectionResult, error) {
	var (
		out  []DetectionResult
		errs error
		seen = map[string]bool{}
	)
	for _, rel := range evidence.MCPConfigFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !p.HasFile(rel) {
			continue
		}
		decls, err := p.MCPServers(rel)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, decl := range decls {
			transport := decl.Transport()
			if transport == "" || seen[decl.Name] {
				continue
			}
			seen[decl.Name] = true
			out = append(out, DetectionResult{
				Name:       decl.Name,
				Variant:    transport,
				Confidence: ConfiguredServerConfidence,
				Evidence:   []string{"declared in " + rel + " (" + transport + ")"},
			})
		}
	}
	return out, errs
}

// MCPProjectDetector classifies the project itself as an MCP server or client
type MCPProjectDetector struct {
	BaseDetector
}

// NewMCPProjectDetector creates the project-role detector
func NewMCPProjectDetector() *MCPProjectDetector {
	return &MCPProjectDetector{BaseDetector: NewBaseDetector(CategoryMCP, MCPProjectName, 50)}
}

// Detect scores SDK usage, manifest hints and entry-point markers
func (d *MCPProjectDetector) Detect(ctx context.Context, p *evidence.Project) ([]DetectionResult, error) {
	s := &scorer{}
	m := p.Manifest()

	dep(50, "@modelcontextprotocol/sdk")(p, s)
	related(50, "fastmcp", "mcp-framework")(p, s)
	if kw, ok := m.HasKeyword("mcp", "modelcontextprotocol", "model-context-protocol"); ok {
		s.add(15, "keyword %q", kw)
	}
	if m.HasBin() {
		s.add(10, "package.json declares bin")
	}
	if strings.Contains(strings.ToLower(m.Name), "mcp") {
		s.add(10, "package name %q", m.Name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	role := MCPServerRole
	for _, rel := range MCPEntryFiles {
		if marker, ok := p.FileContains(rel, mcpServerMarkers...); ok {
			s.add(20, "%s references %s", rel, marker)
			break
		}
		if marker, ok := p.FileContains(rel, mcpClientMarkers...); ok {
			s.add(20, "%s references %s", rel, marker)
			role = MCPClientRole
			break
		}
	}

	r := s.result(role)
	if r == nil || r.Confidence < AdmissionThreshold {
		return nil, nil
	}
	return []DetectionResult{*r}, nil
}
