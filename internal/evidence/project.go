// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Read-only view of a project root used by every detector

package evidence

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MaxEntryRead caps how many bytes of an entry-point source file are read
const MaxEntryRead = 64 * 1024

// DefaultConfigExts are the extensions probed for a <tool>.config file
var DefaultConfigExts = []string{"js", "cjs", "mjs", "ts", "cts", "mts", "json"}

// Project is an immutable, read-only view of a project root.
// It is built once per scan and shared by all detectors.
type Project struct {
	root        string
	manifest    *Manifest
	manifestErr error
	deps        map[string]string
	depSource   map[string]string
}

// Open builds a Project for root. A missing manifest is not an error;
// a malformed one is recorded and exposed through ManifestError.
func Open(root string) *Project {
	p := &Project{
		root:      root,
		deps:      map[string]string{},
		depSource: map[string]string{},
	}

	m, err := ReadManifest(root)
	if err != nil {
		p.manifestErr = err
	}
	if m == nil {
		m = &Manifest{}
	}
	p.manifest = m

	// dependencies win over devDependencies when a package is in both
	for name, version := range m.DevDependencies {
		p.deps[name] = version
		p.depSource[name] = "devDependencies"
	}
	for name, version := range m.Dependencies {
		p.deps[name] = version
		p.depSource[name] = "dependencies"
	}

	return p
}

// Manifest returns the parsed manifest, never nil
func (p *Project) Manifest() *Manifest {
	return p.manifest
}

// HasManifest reports whether a manifest was found and parsed
func (p *Project) HasManifest() bool {
	return p.manifest.found
}

// ManifestError returns the manifest parse failure, if any
func (p *Project) ManifestError() error {
	return p.manifestErr
}

// Path joins rel onto the project root
func (p *Project) Path(rel ...string) string {
	return filepath.Join(append([]string{p.root}, rel...)...)
}

// HasFile reports whether rel exists and is a regular file
func (p *Project) HasFile(rel string) bool {
	info, err := os.Stat(p.Path(rel))
	return err == nil && !info.IsDir()
}

// HasDir reports whether rel exists and is a directory
func (p *Project) HasDir(rel string) bool {
	info, err := os.Stat(p.Path(rel))
	return err == nil && info.IsDir()
}

// FirstFile returns the first of rels that exists as a file
func (p *Project) FirstFile(rels ...string) (string, bool) {
	for _, rel := range rels {
		if p.HasFile(rel) {
			return rel, true
		}
	}
	return "", false
}

// FirstDir returns the first of rels that exists as a directory
func (p *Project) FirstDir(rels ...string) (string, bool) {
	for _, rel := range rels {
		if p.HasDir(rel) {
			return rel, true
		}
	}
	return "", false
}

// FindConfig looks for base.<ext> for every candidate extension, in order.
// DefaultConfigExts is used when exts is empty.
func (p *Project) FindConfig(base string, exts ...string) (string, bool) {
	if len(exts) == 0 {
		exts = DefaultConfigExts
	}
	for _, ext := range exts {
		if name := base + "." + ext; p.HasFile(name) {
			return name, true
		}
	}
	return "", false
}

// Glob returns the sorted slash-separated paths under the root matching pattern.
// Pattern syntax is doublestar's (**, {a,b}, ...).
func (p *Project) Glob(pattern string) []string {
	matches, err := doublestar.Glob(os.DirFS(p.root), pattern)
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

// ReadCapped reads at most limit bytes of rel. Any failure yields "".
func (p *Project) ReadCapped(rel string, limit int) string {
	f, err := os.Open(p.Path(rel))
	if err != nil {
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(limit)))
	if err != nil {
		return ""
	}
	return string(data)
}

// FileContains returns the first needle found in the capped content of rel
func (p *Project) FileContains(rel string, needles ...string) (string, bool) {
	content := p.ReadCapped(rel, MaxEntryRead)
	if content == "" {
		return "", false
	}
	for _, needle := range needles {
		if strings.Contains(content, needle) {
			return needle, true
		}
	}
	return "", false
}

// Dependencies returns the flattened dependencies + devDependencies map
func (p *Project) Dependencies() map[string]string {
	out := make(map[string]string, len(p.deps))
	for name, version := range p.deps {
		out[name] = version
	}
	return out
}

// HasDependency returns the first of names declared in the manifest
func (p *Project) HasDependency(names ...string) (string, bool) {
	for _, name := range names {
		if _, ok := p.deps[name]; ok {
			return name, true
		}
	}
	return "", false
}

// DependencyWithPrefix returns the alphabetically first dependency starting with prefix
func (p *Project) DependencyWithPrefix(prefix string) (string, bool) {
	var matches []string
	for name := range p.deps {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

// DependencyVersion returns the raw declared version of name
func (p *Project) DependencyVersion(name string) string {
	return p.deps[name]
}

// DependencySection returns "dependencies" or "devDependencies" for a declared package
func (p *Project) DependencySection(name string) string {
	return p.depSource[name]
}

// ScriptUsing returns the first script name whose command mentions tool
func (p *Project) ScriptUsing(tool string) (string, bool) {
	names := make([]string, 0, len(p.manifest.Scripts))
	for name := range p.manifest.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, field := range strings.Fields(p.manifest.Scripts[name]) {
			if field == tool {
				return name, true
			}
		}
	}
	return "", false
}
