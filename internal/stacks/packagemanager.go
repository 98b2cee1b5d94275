// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Package manager detectors

package stacks

import (
	"github.com/sony-level/stackscan/internal/evidence"
)

// managerField fires when the manifest packageManager field names tool
func managerField(weight int, tool string) signal {
	return func(p *evidence.Project, s *scorer) {
		field := p.Manifest().PackageManager
		name, version := evidence.PackageManagerField(field)
		if name != tool {
			return
		}
		if version != "" {
			s.version = version
		}
		s.add(weight, "packageManager field %q", field)
	}
}

// PackageManagerDetectors returns the package manager catalogue
func PackageManagerDetectors() []Detector {
	return ranked(
		newTech(CategoryPackageManager, "pnpm", 0,
			managerField(70, "pnpm"),
			file(60, "pnpm-lock.yaml"),
			secondary(file(10, "pnpm-workspace.yaml")),
			secondary(file(5, ".npmrc")),
		),
		newTech(CategoryPackageManager, "Yarn", 0,
			managerField(70, "yarn"),
			file(60, "yarn.lock"),
			secondary(withVariant("berry", file(10, ".yarnrc.yml"))),
			secondary(file(5, ".npmrc")),
		),
		newTech(CategoryPackageManager, "Bun", 0,
			managerField(70, "bun"),
			file(60, "bun.lockb", "bun.lock"),
			secondary(file(10, "bunfig.toml")),
		),
		newTech(CategoryPackageManager, "npm", 0,
			managerField(70, "npm"),
			file(60, "package-lock.json"),
			secondary(file(5, ".npmrc")),
		),
	)
}
