// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Text and JSON rendering of scan results

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sony-level/stackscan/internal/scanner"
	"github.com/sony-level/stackscan/internal/stacks"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Confidence label bounds
const (
	HighConfidence   = 80
	MediumConfidence = 60
)

// TextOptions controls the text renderer
type TextOptions struct {
	Evidence bool // Print the evidence trail under each result
}

var (
	headingColor = color.New(color.Bold)
	nameColor    = color.New(color.FgHiCyan)
	highColor    = color.New(color.FgGreen)
	mediumColor  = color.New(color.FgYellow)
	lowColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// ValidFormat reports whether format is a known output format
func ValidFormat(format string) bool {
	return format == FormatText || format == FormatJSON
}

// Render writes result in the given format
func Render(w io.Writer, result *scanner.ScanResult, format string, opts TextOptions) error {
	switch format {
	case FormatJSON:
		return JSON(w, result)
	case FormatText, "":
		return Text(w, result, opts)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// JSON writes result as indented JSON
func JSON(w io.Writer, result *scanner.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode scan result: %w", err)
	}
	return nil
}

// ConfidenceLabel returns high, medium or low
func ConfidenceLabel(confidence int) string {
	switch {
	case confidence >= HighConfidence:
		return "high"
	case confidence >= MediumConfidence:
		return "medium"
	}
	return "low"
}

func confidenceColor(confidence int) *color.Color {
	switch ConfidenceLabel(confidence) {
	case "high":
		return highColor
	case "medium":
		return mediumColor
	}
	return lowColor
}

// Text writes a human readable report
func Text(w io.Writer, result *scanner.ScanResult, opts TextOptions) error {
	tw := &textWriter{w: w, opts: opts, width: labelWidth()}

	tw.printf("%s %s\n", headingColor.Sprint("Project:"), result.ProjectRoot)
	tw.printf("%s %dms\n\n", headingColor.Sprint("Scan time:"), result.ScanTime)

	stack := result.Stack
	if stack == nil {
		stack = &stacks.DetectedStack{}
	}

	found := 0
	for _, c := range stacks.AllCategories() {
		switch c.Policy() {
		case stacks.PolicySingle:
			if r := stack.Single(c); r != nil {
				tw.result(c.Label(), r)
				found++
			}
		case stacks.PolicyMulti:
			for i := range stack.Multi(c) {
				label := c.Label()
				if i > 0 {
					label = ""
				}
				tw.result(label, &stack.Multi(c)[i])
				found++
			}
		case stacks.PolicyTesting:
			if stack.Testing == nil {
				continue
			}
			if stack.Testing.Unit != nil {
				tw.result("Testing (unit)", stack.Testing.Unit)
				found++
			}
			if stack.Testing.E2E != nil {
				tw.result("Testing (e2e)", stack.Testing.E2E)
				found++
			}
		}
	}
	if found == 0 {
		tw.printf("%s\n", dimColor.Sprint("No technologies detected"))
	}

	tw.mcp(stack.MCP)

	if len(result.Errors) > 0 {
		tw.printf("\n%s\n", errorColor.Sprint("Errors:"))
		for _, e := range result.Errors {
			tw.printf("  - %s\n", e)
		}
	}

	return tw.err
}

// labelWidth is the widest category label, testing sub-slots included
func labelWidth() int {
	width := len("Testing (unit)")
	for _, c := range stacks.AllCategories() {
		if n := len(c.Label()); n > width {
			width = n
		}
	}
	return width
}

type textWriter struct {
	w     io.Writer
	opts  TextOptions
	width int
	err   error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) result(label string, r *stacks.DetectionResult) {
	var b strings.Builder
	b.WriteString(nameColor.Sprint(r.Name))
	if r.Version != "" {
		b.WriteString(" " + r.Version)
	}
	if r.Variant != "" {
		b.WriteString(" (" + r.Variant + ")")
	}

	conf := confidenceColor(r.Confidence).Sprintf("%d%% %s", r.Confidence, ConfidenceLabel(r.Confidence))
	tw.printf("  %-*s  %s  %s\n", tw.width, label, b.String(), conf)

	if tw.opts.Evidence {
		for _, e := range r.Evidence {
			tw.printf("  %-*s    %s\n", tw.width, "", dimColor.Sprint("- "+e))
		}
	}
}

func (tw *textWriter) mcp(m *stacks.MCPStack) {
	if m == nil {
		return
	}
	tw.printf("\n%s\n", headingColor.Sprint("MCP:"))

	if m.ProjectInfo != nil {
		tw.result("Project", m.ProjectInfo)
	}
	for i := range m.Detected {
		label := "Configured"
		if i > 0 {
			label = ""
		}
		tw.result(label, &m.Detected[i])
	}
	if len(m.Recommended) > 0 {
		tw.printf("  %-*s  %s\n", tw.width, "Recommended", strings.Join(m.Recommended, ", "))
	}
}
