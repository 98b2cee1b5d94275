// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Kubernetes manifest sniffing

package evidence

import (
	"io"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// maxManifestDocs bounds how many YAML documents are decoded per file
const maxManifestDocs = 8

// KubernetesDirs are the conventional manifest directories
var KubernetesDirs = []string{"k8s", "kubernetes", "deploy", "manifests"}

// IsKubernetesManifest reports whether a YAML file holds at least one
// document with both apiVersion and kind.
func IsKubernetesManifest(filePath string) bool {
	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer f.Close()

	dec := yaml.NewDecoder(io.LimitReader(f, MaxEntryRead))
	for i := 0; i < maxManifestDocs; i++ {
		var doc struct {
			APIVersion string `yaml:"apiVersion"`
			Kind       string `yaml:"kind"`
		}
		// io.EOF ends the stream; any other error means it is not YAML we understand
		if err := dec.Decode(&doc); err != nil {
			return false
		}
		if doc.APIVersion != "" && doc.Kind != "" {
			return true
		}
	}
	return false
}

// KubernetesManifest returns the first Kubernetes manifest found in the
// conventional directories, as a root-relative path.
func (p *Project) KubernetesManifest() (string, bool) {
	for _, dir := range KubernetesDirs {
		if !p.HasDir(dir) {
			continue
		}
		for _, rel := range p.Glob(path.Join(dir, "**", "*.{yaml,yml}")) {
			if IsKubernetesManifest(p.Path(rel)) {
				return rel, true
			}
		}
	}
	return "", false
}
