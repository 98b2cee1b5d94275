// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// MCP server tests

package tests

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/stackscan/internal/mcpserver"
	"github.com/sony-level/stackscan/internal/scanner"
)

func nextProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"dependencies": {"next": "14.2.3", "react": "18.3.1"}}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0755))
	return dir
}

func callDetect(t *testing.T, s *mcpserver.Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tools := s.MCPServer().ListTools()
	tool, ok := tools[mcpserver.DetectStackTool]
	require.True(t, ok, "detect_stack not registered")

	result, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: mcpserver.DetectStackTool, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	return text.Text
}

func TestToolRegistration(t *testing.T) {
	s := mcpserver.NewServer("test")
	tools := s.MCPServer().ListTools()
	assert.Len(t, tools, 1)
	assert.Contains(t, tools, mcpserver.DetectStackTool)
}

func TestDetectStack_JSON(t *testing.T) {
	dir := nextProject(t)
	result := callDetect(t, mcpserver.NewServer("test"), map[string]any{"path": dir})
	require.False(t, result.IsError, resultText(t, result))

	var decoded scanner.ScanResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.Equal(t, dir, decoded.ProjectRoot)
	require.NotNil(t, decoded.Stack.Framework)
	assert.Equal(t, "Next.js", decoded.Stack.Framework.Name)
}

func TestDetectStack_Text(t *testing.T) {
	dir := nextProject(t)
	result := callDetect(t, mcpserver.NewServer("test"), map[string]any{"path": dir, "format": "text"})
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Next.js")
}

func TestDetectStack_MinConfidence(t *testing.T) {
	dir := nextProject(t)
	result := callDetect(t, mcpserver.NewServer("test"), map[string]any{"path": dir, "min_confidence": float64(100)})
	require.False(t, result.IsError)

	var decoded scanner.ScanResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.Nil(t, decoded.Stack.Framework)
}

func TestDetectStack_InvalidArguments(t *testing.T) {
	s := mcpserver.NewServer("test")
	dir := t.TempDir()

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing path", map[string]any{}},
		{"empty path", map[string]any{"path": ""}},
		{"min_confidence out of range", map[string]any{"path": dir, "min_confidence": float64(150)}},
		{"min_confidence not a number", map[string]any{"path": dir, "min_confidence": "high"}},
		{"unknown format", map[string]any{"path": dir, "format": "xml"}},
		{"missing directory", map[string]any{"path": filepath.Join(dir, "missing")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, callDetect(t, s, tt.args).IsError)
		})
	}
}

func TestDetectStack_DefaultOptions(t *testing.T) {
	dir := nextProject(t)
	s := mcpserver.NewServer("test", mcpserver.WithScanOptions(scanner.Options{MinConfidence: 100}))
	result := callDetect(t, s, map[string]any{"path": dir})
	require.False(t, result.IsError)

	var decoded scanner.ScanResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.Nil(t, decoded.Stack.Framework)
}
