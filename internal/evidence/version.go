// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Declared version helpers

package evidence

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MajorVersion extracts the major version from a declared range such as
// "^4.0.2", "~3.4", ">=5.0.0 <6" or "workspace:^1.2.0".
// Tags like "latest" or git URLs report false.
func MajorVersion(declared string) (uint64, bool) {
	v := strings.TrimSpace(declared)
	v = strings.TrimPrefix(v, "workspace:")
	v = strings.TrimPrefix(v, "npm:")
	v = strings.TrimLeft(v, "^~>=<v ")
	if i := strings.IndexAny(v, " |,"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return 0, false
	}

	parsed, err := semver.NewVersion(v)
	if err != nil {
		return 0, false
	}
	return parsed.Major(), true
}

// PackageManagerField splits a "packageManager" field like "pnpm@9.1.0+sha512..."
// into tool and version.
func PackageManagerField(field string) (tool, version string) {
	tool, version, _ = strings.Cut(strings.TrimSpace(field), "@")
	if i := strings.Index(version, "+"); i >= 0 {
		version = version[:i]
	}
	return tool, version
}
