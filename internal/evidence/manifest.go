// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Dependency manifest (package.json) parsing

package evidence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/multierr"
)

// ManifestFile is the dependency manifest name at the project root
const ManifestFile = "package.json"

// Manifest holds the package.json fields detectors look at
type Manifest struct {
	Name            string
	PackageManager  string
	Dependencies    map[string]string
	DevDependencies map[string]string
	Scripts         map[string]string
	Keywords        []string
	Bin             gjson.Result
	Workspaces      gjson.Result

	found bool
}

// ReadManifest parses the manifest under root.
// Returns nil, nil when there is no manifest and nil with an error when it
// is not a JSON object. A field of the wrong type is skipped and reported
// in the error while the rest of the manifest is still returned.
func ReadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", ManifestFile, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse %s: invalid JSON", ManifestFile)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("parse %s: top level is not an object", ManifestFile)
	}

	m := &Manifest{
		Bin:        doc.Get("bin"),
		Workspaces: doc.Get("workspaces"),
		found:      true,
	}
	var errs error
	m.Name, errs = stringField(doc, "name", errs)
	m.PackageManager, errs = stringField(doc, "packageManager", errs)
	m.Dependencies, errs = stringMap(doc, "dependencies", errs)
	m.DevDependencies, errs = stringMap(doc, "devDependencies", errs)
	m.Scripts, errs = stringMap(doc, "scripts", errs)
	m.Keywords, errs = keywords(doc, errs)

	if errs != nil {
		return m, fmt.Errorf("parse %s: %w", ManifestFile, errs)
	}
	return m, nil
}

func fieldError(field, want string, got gjson.Result) error {
	return fmt.Errorf("field %q: expected %s, got %s", field, want, got.Type)
}

func stringField(doc gjson.Result, field string, errs error) (string, error) {
	r := doc.Get(field)
	switch r.Type {
	case gjson.Null:
		return "", errs
	case gjson.String:
		return r.String(), errs
	}
	return "", multierr.Append(errs, fieldError(field, "string", r))
}

// stringMap reads an object of strings, dropping entries of other types
func stringMap(doc gjson.Result, field string, errs error) (map[string]string, error) {
	r := doc.Get(field)
	if r.Type == gjson.Null {
		return nil, errs
	}
	if !r.IsObject() {
		return nil, multierr.Append(errs, fieldError(field, "object", r))
	}
	out := map[string]string{}
	r.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			out[key.String()] = value.String()
		}
		return true
	})
	return out, errs
}

// keywords accepts the array form and the comma separated string form
func keywords(doc gjson.Result, errs error) ([]string, error) {
	r := doc.Get("keywords")
	var out []string
	switch {
	case r.Type == gjson.Null:
	case r.Type == gjson.String:
		for _, kw := range strings.Split(r.String(), ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				out = append(out, kw)
			}
		}
	case r.IsArray():
		for _, item := range r.Array() {
			if item.Type == gjson.String {
				out = append(out, item.String())
			}
		}
	default:
		errs = multierr.Append(errs, fieldError("keywords", "array", r))
	}
	return out, errs
}

// HasBin reports whether the manifest declares executables
func (m *Manifest) HasBin() bool {
	bin := m.Bin
	switch {
	case bin.Type == gjson.String:
		return bin.String() != ""
	case bin.IsObject():
		return len(bin.Map()) > 0
	}
	return false
}

// WorkspacePatterns returns the workspace globs, accepting both the
// array form and the {"packages": [...]} form.
func (m *Manifest) WorkspacePatterns() []string {
	ws := m.Workspaces
	if !ws.Exists() {
		return nil
	}
	if !ws.IsArray() {
		ws = ws.Get("packages")
	}

	var patterns []string
	for _, item := range ws.Array() {
		if item.Type == gjson.String && item.String() != "" {
			patterns = append(patterns, item.String())
		}
	}
	return patterns
}

// HasKeyword reports whether any keyword equals one of words
func (m *Manifest) HasKeyword(words ...string) (string, bool) {
	for _, kw := range m.Keywords {
		for _, w := range words {
			if kw == w {
				return kw, true
			}
		}
	}
	return "", false
}
