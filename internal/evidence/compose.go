// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// docker-compose and pnpm workspace YAML parsing

package evidence

import (
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ComposeFiles are the compose file names checked at the root, in order
var ComposeFiles = []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"}

type composeFile struct {
	Services map[string]struct {
		Image string `yaml:"image"`
	} `yaml:"services"`
}

// ComposeImages returns the image repositories (no registry path, no tag)
// declared by services in the first compose file found, sorted.
func (p *Project) ComposeImages() (string, []string) {
	rel, ok := p.FirstFile(ComposeFiles...)
	if !ok {
		return "", nil
	}

	data, err := os.ReadFile(p.Path(rel))
	if err != nil {
		return rel, nil
	}

	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return rel, nil
	}

	images := make([]string, 0, len(cf.Services))
	for _, svc := range cf.Services {
		if svc.Image == "" {
			continue
		}
		images = append(images, imageRepository(svc.Image))
	}
	sort.Strings(images)

	return rel, images
}

// ComposeImage returns the first declared image whose repository starts with one of prefixes
func (p *Project) ComposeImage(prefixes ...string) (string, string, bool) {
	rel, images := p.ComposeImages()
	for _, img := range images {
		for _, prefix := range prefixes {
			if strings.HasPrefix(img, prefix) {
				return rel, img, true
			}
		}
	}
	return "", "", false
}

// imageRepository reduces "docker.io/bitnami/postgresql:16" to "postgresql"
func imageRepository(image string) string {
	image = strings.ToLower(strings.TrimSpace(image))
	if i := strings.Index(image, "@"); i >= 0 {
		image = image[:i]
	}
	image = path.Base(image)
	if i := strings.Index(image, ":"); i >= 0 {
		image = image[:i]
	}
	return image
}

// PnpmWorkspacePackages returns the package globs listed in pnpm-workspace.yaml
func (p *Project) PnpmWorkspacePackages() ([]string, bool) {
	data, err := os.ReadFile(p.Path("pnpm-workspace.yaml"))
	if err != nil {
		return nil, false
	}

	var ws struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, true
	}
	return ws.Packages, true
}
