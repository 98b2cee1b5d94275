// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// MCP client configuration files

package evidence

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// MCPConfigFiles are the project-level MCP configuration files, in precedence order
var MCPConfigFiles = []string{".mcp.json", ".cursor/mcp.json", ".vscode/mcp.json", "mcp.json"}

// MCPServerDecl is one server entry from an MCP configuration file
type MCPServerDecl struct {
	Name    string
	Source  string
	Type    string
	Command string
	URL     string
}

// Transport classifies the declaration as stdio, http or sse.
// Returns "" when the entry has neither a command nor a URL.
func (d MCPServerDecl) Transport() string {
	switch {
	case d.Command != "":
		return "stdio"
	case d.URL != "" && d.Type == "sse":
		return "sse"
	case d.URL != "":
		return "http"
	}
	return ""
}

// MCPServers parses rel and returns its server declarations in document order.
// Both the "mcpServers" and the "servers" layouts are accepted.
func (p *Project) MCPServers(rel string) ([]MCPServerDecl, error) {
	data, err := os.ReadFile(p.Path(rel))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse %s: invalid JSON", rel)
	}

	servers := gjson.GetBytes(data, "mcpServers")
	if !servers.Exists() {
		servers = gjson.GetBytes(data, "servers")
	}
	if !servers.IsObject() {
		return nil, nil
	}

	var decls []MCPServerDecl
	servers.ForEach(func(key, value gjson.Result) bool {
		decls = append(decls, MCPServerDecl{
			Name:    key.String(),
			Source:  rel,
			Type:    value.Get("type").String(),
			Command: value.Get("command").String(),
			URL:     value.Get("url").String(),
		})
		return true
	})
	return decls, nil
}
