// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Evidence primitive tests

package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/stackscan/internal/evidence"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestOpen_NoManifest(t *testing.T) {
	p := evidence.Open(t.TempDir())
	assert.False(t, p.HasManifest())
	assert.NoError(t, p.ManifestError())
	assert.NotNil(t, p.Manifest())
	assert.Empty(t, p.Dependencies())
}

func TestOpen_MalformedManifest(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", "{not json")

	p := evidence.Open(dir)
	assert.False(t, p.HasManifest())
	require.Error(t, p.ManifestError())
	assert.Contains(t, p.ManifestError().Error(), "parse package.json")
	assert.Empty(t, p.Dependencies())
}

func TestOpen_StringKeywords(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"keywords": "mcp, web", "dependencies": {"next": "14.0.0"}}`)

	p := evidence.Open(dir)
	assert.NoError(t, p.ManifestError())
	assert.Equal(t, []string{"mcp", "web"}, p.Manifest().Keywords)
	_, ok := p.HasDependency("next")
	assert.True(t, ok)
}

func TestOpen_MistypedFieldKeepsManifest(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{
		"name": 42,
		"scripts": ["build"],
		"dependencies": {"next": "14.0.0", "broken": {"version": "1"}}
	}`)

	p := evidence.Open(dir)
	assert.True(t, p.HasManifest())
	require.Error(t, p.ManifestError())
	assert.Contains(t, p.ManifestError().Error(), `"name"`)
	assert.Contains(t, p.ManifestError().Error(), `"scripts"`)

	assert.Empty(t, p.Manifest().Name)
	assert.Empty(t, p.Manifest().Scripts)
	assert.Equal(t, map[string]string{"next": "14.0.0"}, p.Dependencies())
}

func TestOpen_ManifestNotObject(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `["next"]`)

	p := evidence.Open(dir)
	assert.False(t, p.HasManifest())
	assert.Error(t, p.ManifestError())
}

func TestDependencies_Flattened(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{
		"dependencies": {"react": "18.2.0", "shared": "1.0.0"},
		"devDependencies": {"vitest": "1.6.0", "shared": "2.0.0", "@radix-ui/react-slot": "1.0.0", "@radix-ui/react-dialog": "1.0.0"}
	}`)
	p := evidence.Open(dir)

	assert.True(t, p.HasManifest())
	assert.Len(t, p.Dependencies(), 5)
	assert.Equal(t, "1.0.0", p.DependencyVersion("shared"))
	assert.Equal(t, "dependencies", p.DependencySection("shared"))
	assert.Equal(t, "devDependencies", p.DependencySection("vitest"))

	name, ok := p.HasDependency("jest", "vitest")
	assert.True(t, ok)
	assert.Equal(t, "vitest", name)

	name, ok = p.DependencyWithPrefix("@radix-ui/")
	assert.True(t, ok)
	assert.Equal(t, "@radix-ui/react-dialog", name)

	_, ok = p.DependencyWithPrefix("@mui/")
	assert.False(t, ok)
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "vite.config.mts", "")
	createFile(t, dir, "jest.config", "")
	p := evidence.Open(dir)

	rel, ok := p.FindConfig("vite.config")
	assert.True(t, ok)
	assert.Equal(t, "vite.config.mts", rel)

	_, ok = p.FindConfig("jest.config")
	assert.False(t, ok)

	rel, ok = p.FindConfig("jest", "config")
	assert.True(t, ok)
	assert.Equal(t, "jest.config", rel)
}

func TestFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "app/page.tsx", "")
	p := evidence.Open(dir)

	assert.True(t, p.HasDir("app"))
	assert.False(t, p.HasFile("app"))
	assert.True(t, p.HasFile("app/page.tsx"))

	rel, ok := p.FirstDir("src/app", "app")
	assert.True(t, ok)
	assert.Equal(t, "app", rel)

	_, ok = p.FirstFile("missing.json")
	assert.False(t, ok)
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "src/b/Card.module.scss", "")
	createFile(t, dir, "src/a/Button.module.css", "")
	createFile(t, dir, "src/a/plain.css", "")
	p := evidence.Open(dir)

	assert.Equal(t,
		[]string{"src/a/Button.module.css", "src/b/Card.module.scss"},
		p.Glob("src/**/*.module.{css,scss}"))
	assert.Empty(t, p.Glob("lib/**/*.css"))
}

func TestFileContains_Capped(t *testing.T) {
	dir := t.TempDir()
	padding := strings.Repeat("x", evidence.MaxEntryRead)
	createFile(t, dir, "src/index.ts", "new McpServer()\n"+padding+"StdioClientTransport")
	p := evidence.Open(dir)

	needle, ok := p.FileContains("src/index.ts", "StdioClientTransport", "McpServer")
	assert.True(t, ok)
	assert.Equal(t, "McpServer", needle)

	_, ok = p.FileContains("src/index.ts", "StdioClientTransport")
	assert.False(t, ok)

	_, ok = p.FileContains("missing.ts", "anything")
	assert.False(t, ok)
}

func TestScriptUsing(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"scripts": {"test": "vitest run", "lint": "eslint-jest-plugin ."}}`)
	p := evidence.Open(dir)

	name, ok := p.ScriptUsing("vitest")
	assert.True(t, ok)
	assert.Equal(t, "test", name)

	_, ok = p.ScriptUsing("jest")
	assert.False(t, ok)
}

func TestManifest_BinAndWorkspaces(t *testing.T) {
	tests := []struct {
		name       string
		manifest   string
		wantBin    bool
		workspaces []string
	}{
		{"string bin", `{"bin": "cli.js"}`, true, nil},
		{"object bin", `{"bin": {"tool": "cli.js"}}`, true, nil},
		{"empty bin", `{"bin": {}}`, false, nil},
		{"array workspaces", `{"workspaces": ["apps/*", "packages/*"]}`, false, []string{"apps/*", "packages/*"}},
		{"object workspaces", `{"workspaces": {"packages": ["libs/*"]}}`, false, []string{"libs/*"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFile(t, dir, "package.json", tt.manifest)
			m, err := evidence.ReadManifest(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBin, m.HasBin())
			assert.Equal(t, tt.workspaces, m.WorkspacePatterns())
		})
	}
}

func TestMajorVersion(t *testing.T) {
	tests := []struct {
		declared string
		want     uint64
		ok       bool
	}{
		{"4.0.2", 4, true},
		{"^3.4.1", 3, true},
		{"~5.0", 5, true},
		{">=2.0.0 <3", 2, true},
		{"workspace:^1.2.0", 1, true},
		{"5.0.0-beta.19", 5, true},
		{"latest", 0, false},
		{"", 0, false},
		{"github:user/repo", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			got, ok := evidence.MajorVersion(tt.declared)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackageManagerField(t *testing.T) {
	tool, version := evidence.PackageManagerField("pnpm@9.1.0+sha512.deadbeef")
	assert.Equal(t, "pnpm", tool)
	assert.Equal(t, "9.1.0", version)

	tool, version = evidence.PackageManagerField("yarn")
	assert.Equal(t, "yarn", tool)
	assert.Empty(t, version)
}

func TestComposeImages(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "compose.yaml", `services:
  db:
    image: bitnami/postgresql:16
  cache:
    image: redis@sha256:abc
  app:
    build: .
`)
	p := evidence.Open(dir)

	rel, images := p.ComposeImages()
	assert.Equal(t, "compose.yaml", rel)
	assert.Equal(t, []string{"postgresql", "redis"}, images)

	_, img, ok := p.ComposeImage("postgres")
	assert.True(t, ok)
	assert.Equal(t, "postgresql", img)
}

func TestPnpmWorkspacePackages(t *testing.T) {
	dir := t.TempDir()
	p := evidence.Open(dir)
	_, found := p.PnpmWorkspacePackages()
	assert.False(t, found)

	createFile(t, dir, "pnpm-workspace.yaml", "packages:\n  - apps/*\n")
	pkgs, found := p.PnpmWorkspacePackages()
	assert.True(t, found)
	assert.Equal(t, []string{"apps/*"}, pkgs)
}

func TestKubernetesManifest(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "deploy/values.yaml", "replicas: 2\n")
	createFile(t, dir, "deploy/svc/service.yml", "---\n# leading doc\nfoo: bar\n---\napiVersion: v1\nkind: Service\n")
	p := evidence.Open(dir)

	rel, ok := p.KubernetesManifest()
	assert.True(t, ok)
	assert.Equal(t, "deploy/svc/service.yml", rel)
	assert.False(t, evidence.IsKubernetesManifest(filepath.Join(dir, "deploy/values.yaml")))
}

func TestMCPServers(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, ".cursor/mcp.json", `{"mcpServers": {
		"fs": {"command": "npx"},
		"remote": {"type": "sse", "url": "https://example.com/sse"},
		"empty": {}
	}}`)
	createFile(t, dir, "mcp.json", `{"servers": `)
	p := evidence.Open(dir)

	decls, err := p.MCPServers(".cursor/mcp.json")
	require.NoError(t, err)
	require.Len(t, decls, 3)
	assert.Equal(t, "fs", decls[0].Name)
	assert.Equal(t, "stdio", decls[0].Transport())
	assert.Equal(t, "sse", decls[1].Transport())
	assert.Equal(t, "", decls[2].Transport())

	_, err = p.MCPServers("mcp.json")
	assert.Error(t, err)
}
