// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Monorepo tooling detectors

package stacks

import (
	"strings"

	"github.com/sony-level/stackscan/internal/evidence"
)

// pnpmWorkspace fires on pnpm-workspace.yaml, with a bonus for listed packages
func pnpmWorkspace(weight, listed int) signal {
	return func(p *evidence.Project, s *scorer) {
		pkgs, ok := p.PnpmWorkspacePackages()
		if !ok {
			return
		}
		s.add(weight, "pnpm-workspace.yaml present")
		if len(pkgs) > 0 {
			s.add(listed, "workspace packages %s", strings.Join(pkgs, ", "))
		}
	}
}

// manifestWorkspaces fires on the package.json workspaces field
func manifestWorkspaces(weight int) signal {
	return func(p *evidence.Project, s *scorer) {
		if patterns := p.Manifest().WorkspacePatterns(); len(patterns) > 0 {
			s.add(weight, "package.json workspaces %s", strings.Join(patterns, ", "))
		}
	}
}

// MonorepoDetectors returns the monorepo tooling catalogue
func MonorepoDetectors() []Detector {
	return ranked(
		newTech(CategoryMonorepo, "Turborepo", 0,
			file(60, "turbo.json"),
			related(30, "turbo"),
		),
		newTech(CategoryMonorepo, "Nx", 0,
			file(60, "nx.json"),
			related(30, "nx"),
		),
		newTech(CategoryMonorepo, "Rush", 0, file(70, "rush.json")),
		newTech(CategoryMonorepo, "Lerna", 0,
			file(60, "lerna.json"),
			related(30, "lerna"),
		),
		newTech(CategoryMonorepo, "pnpm workspaces", 0, pnpmWorkspace(60, 10)),
		newTech(CategoryMonorepo, "npm/Yarn workspaces", 0, manifestWorkspaces(50)),
	)
}
