// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scanner tests

package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/stackscan/internal/evidence"
	"github.com/sony-level/stackscan/internal/scanner"
	"github.com/sony-level/stackscan/internal/stacks"
)

func TestScan_NextAppRouter(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"dependencies": {"next": "14.2.3", "react": "18.3.1"}}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0755))

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)

	fw := result.Stack.Framework
	require.NotNil(t, fw)
	assert.Equal(t, "Next.js", fw.Name)
	assert.Equal(t, "app-router", fw.Variant)
	assert.Equal(t, "14.2.3", fw.Version)
	assert.GreaterOrEqual(t, fw.Confidence, 90)
}

func TestScan_VitestPreferredOverJest(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"devDependencies": {"vitest": "^1.6.0", "jest": "^29.7.0"}}`)
	createFile(t, dir, "vitest.config.ts", "export default {}")

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)

	require.NotNil(t, result.Stack.Testing)
	require.NotNil(t, result.Stack.Testing.Unit)
	assert.Equal(t, "Vitest", result.Stack.Testing.Unit.Name)
	assert.Nil(t, result.Stack.Testing.E2E)
}

func TestScan_EmptyManifestOnlyRecommends(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"name": "plain", "dependencies": {"left-pad": "1.3.0"}}`)

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	assert.Equal(t, []stacks.Category{stacks.CategoryMCP}, result.Stack.Categories())
	require.NotNil(t, result.Stack.MCP)
	assert.Equal(t, []string{"filesystem", "github", "memory"}, result.Stack.MCP.Recommended)
	assert.False(t, result.Stack.MCP.IsProject)
	assert.Empty(t, result.Stack.MCP.Detected)
}

func TestScan_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, scanner.ErrProjectNotFound)
	assert.Nil(t, result)
}

func TestScan_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{}`)

	_, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), filepath.Join(dir, "package.json"))
	assert.ErrorIs(t, err, scanner.ErrNotDirectory)
}

func TestScan_TailwindMajorVariant(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"devDependencies": {"tailwindcss": "4.0.2"}}`)
	createFile(t, dir, "tailwind.config.js", "module.exports = {}")

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)

	styling := result.Stack.Styling
	require.NotNil(t, styling)
	assert.Equal(t, "Tailwind CSS", styling.Name)
	assert.Equal(t, "v4", styling.Variant)
	assert.Equal(t, 90, styling.Confidence)
	assert.Len(t, styling.Evidence, 2)
}

func TestScan_MinConfidenceDropsSlot(t *testing.T) {
	dir := t.TempDir()
	// Redux Toolkit 70 + react-redux 10 = 80
	createFile(t, dir, "package.json", `{"dependencies": {"@reduxjs/toolkit": "2.2.0", "react-redux": "9.1.0"}}`)

	base, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, base.Stack.StateManagement)
	assert.Equal(t, 80, base.Stack.StateManagement.Confidence)

	strict, err := scanner.New(scanner.Options{MinConfidence: 95}).Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Nil(t, strict.Stack.StateManagement)
	// mcp is never threshold filtered
	require.NotNil(t, strict.Stack.MCP)
	assert.NotEmpty(t, strict.Stack.MCP.Recommended)
}

func TestScan_IncludeLowConfidence(t *testing.T) {
	dir := t.TempDir()
	// the browser SDK alone scores 20 for Stripe
	createFile(t, dir, "package.json", `{"dependencies": {"@stripe/stripe-js": "3.0.0"}}`)

	defaults, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Nil(t, defaults.Stack.Payments)

	low, err := scanner.New(scanner.Options{IncludeLowConfidence: true, MinConfidence: 90}).Scan(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, low.Stack.Payments)
	assert.Equal(t, "Stripe", low.Stack.Payments.Name)
	assert.Equal(t, 20, low.Stack.Payments.Confidence)
}

func TestScan_MalformedManifest(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"dependencies": `)
	createFile(t, dir, "pnpm-lock.yaml", "lockfileVersion: '9.0'")

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, result.HasErrors())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "parse package.json")
	require.NotNil(t, result.Stack.PackageManager)
	assert.Equal(t, "pnpm", result.Stack.PackageManager.Name)
}

func TestScan_DetectorFailureIsIsolated(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"dependencies": {"next": "14.0.0"}}`)

	reg := stacks.NewDefaultRegistry()
	reg.Register(&panickingDetector{})

	result, err := scanner.New(scanner.DefaultOptions(), scanner.WithRegistry(reg)).Scan(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "detector exploding")
	require.NotNil(t, result.Stack.Framework)
	assert.Equal(t, "Next.js", result.Stack.Framework.Name)
}

func TestScan_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"dependencies": {"next": "14.0.0"}}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := scanner.New(scanner.DefaultOptions()).Scan(ctx, dir)
	require.NoError(t, err)
	assert.True(t, result.Stack.IsEmpty())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "detection aborted")
}

func TestScan_RelativeRootIsResolved(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), rel)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(result.ProjectRoot))
	assert.Equal(t, dir, result.ProjectRoot)
	assert.GreaterOrEqual(t, result.ScanTime, int64(0))
}

func TestScan_ZeroOptionsUseDefaultThreshold(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"dependencies": {"@stripe/stripe-js": "3.0.0"}}`)

	result, err := scanner.New(scanner.Options{}).Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Nil(t, result.Stack.Payments)
}

func TestOptions_EffectiveMinConfidence(t *testing.T) {
	tests := []struct {
		name string
		opts scanner.Options
		want int
	}{
		{"defaults", scanner.DefaultOptions(), 40},
		{"zero value", scanner.Options{}, 40},
		{"include low", scanner.Options{IncludeLowConfidence: true, MinConfidence: 80}, 1},
		{"above range", scanner.Options{MinConfidence: 150}, 100},
		{"below range", scanner.Options{MinConfidence: -5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.EffectiveMinConfidence())
		})
	}
}

type panickingDetector struct{}

func (panickingDetector) Category() stacks.Category { return stacks.CategoryStyling }
func (panickingDetector) Name() string              { return "exploding" }
func (panickingDetector) Priority() int             { return 1000 }
func (panickingDetector) Detect(context.Context, *evidence.Project) ([]stacks.DetectionResult, error) {
	panic("boom")
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScan_LooseManifestFields(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"keywords": "web", "dependencies": {"next": "14.0.0"}}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0755))

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Stack.Framework)
	assert.Equal(t, "Next.js", result.Stack.Framework.Name)
}

func TestScan_MistypedManifestFieldKeepsDependencies(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "package.json", `{"scripts": "next dev", "dependencies": {"next": "14.0.0"}}`)

	result, err := scanner.New(scanner.DefaultOptions()).Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `"scripts"`)
	require.NotNil(t, result.Stack.Framework)
	assert.Equal(t, "Next.js", result.Stack.Framework.Name)
}
