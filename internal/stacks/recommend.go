// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// MCP server recommendations inferred from dependencies

package stacks

import (
	"context"
	"strings"

	"github.com/sony-level/stackscan/internal/evidence"
)

// BaselineRecommendations are recommended for every project
var BaselineRecommendations = []string{"filesystem", "github", "memory"}

// recommendation maps dependencies to an MCP server. Names ending in "/"
// match any package with that scope.
type recommendation struct {
	server string
	deps   []string
}

var recommendations = []recommendation{
	{"postgres", []string{"pg", "postgres", "@neondatabase/serverless"}},
	{"supabase", []string{"@supabase/supabase-js"}},
	{"mysql", []string{"mysql2"}},
	{"mongodb", []string{"mongodb", "mongoose"}},
	{"sqlite", []string{"better-sqlite3", "sqlite3"}},
	{"redis", []string{"redis", "ioredis"}},
	{"aws-s3", []string{"@aws-sdk/client-s3"}},
	{"gcs", []string{"@google-cloud/storage"}},
	{"stripe", []string{"stripe"}},
	{"sentry", []string{"@sentry/"}},
	{"playwright", []string{"@playwright/test", "playwright", "puppeteer"}},
	{"slack", []string{"@slack/"}},
	{"linear", []string{"@linear/sdk"}},
	{"notion", []string{"@notionhq/client"}},
	{"cloudflare", []string{"wrangler"}},
	{"vercel", []string{"vercel", "@vercel/"}},
	{"prisma", []string{"prisma"}},
	{"firebase", []string{"firebase", "firebase-admin"}},
}

// RecommendationDetector proposes MCP servers. It always matches.
type RecommendationDetector struct {
	BaseDetector
}

// NewRecommendationDetector creates the recommendation pseudo-detector
func NewRecommendationDetector() *RecommendationDetector {
	return &RecommendationDetector{BaseDetector: NewBaseDetector(CategoryMCP, MCPRecommendName, 0)}
}

// Detect returns the baseline followed by inferred servers, de-duplicated
func (d *RecommendationDetector) Detect(_ context.Context, p *evidence.Project) ([]DetectionResult, error) {
	var out []DetectionResult
	seen := map[string]bool{}
	push := func(server, why string) {
		if seen[server] {
			return
		}
		seen[server] = true
		out = append(out, DetectionResult{
			Name:       server,
			Variant:    RecommendedVariant,
			Confidence: MaxConfidence,
			Evidence:   []string{why},
		})
	}

	for _, server := range BaselineRecommendations {
		push(server, "baseline recommendation")
	}
	for _, rec := range recommendations {
		if name, ok := matchRecommendation(p, rec.deps); ok {
			push(rec.server, "inferred from "+name)
		}
	}
	return out, nil
}

func matchRecommendation(p *evidence.Project, deps []string) (string, bool) {
	for _, d := range deps {
		if strings.HasSuffix(d, "/") {
			if name, ok := p.DependencyWithPrefix(d); ok {
				return name, true
			}
			continue
		}
		if name, ok := p.HasDependency(d); ok {
			return name, true
		}
	}
	return "", false
}
