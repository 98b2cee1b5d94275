// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Deployment target detectors

package stacks

import (
	"github.com/sony-level/stackscan/internal/evidence"
)

// composeFile fires when any docker-compose file is present
func composeFile(weight int) signal {
	return file(weight, evidence.ComposeFiles...)
}

// kubernetesManifest fires on the first manifest with apiVersion and kind
func kubernetesManifest(weight int) signal {
	return func(p *evidence.Project, s *scorer) {
		if rel, ok := p.KubernetesManifest(); ok {
			s.add(weight, "Kubernetes manifest %s", rel)
		}
	}
}

// DeploymentDetectors returns the deployment target catalogue
func DeploymentDetectors() []Detector {
	return ranked(
		newTech(CategoryDeployment, "Vercel", 0,
			file(60, "vercel.json"),
			dir(30, ".vercel"),
			secondary(relatedPrefix(10, "@vercel/")),
		),
		newTech(CategoryDeployment, "Netlify", 0,
			file(60, "netlify.toml"),
			secondary(dir(10, "netlify/functions")),
			secondary(relatedPrefix(10, "@netlify/")),
		),
		newTech(CategoryDeployment, "Cloudflare", 0,
			file(60, "wrangler.toml", "wrangler.json", "wrangler.jsonc"),
			related(20, "wrangler"),
			secondary(relatedPrefix(10, "@cloudflare/")),
		),
		newTech(CategoryDeployment, "Docker", 0,
			file(50, "Dockerfile"),
			composeFile(20),
			secondary(file(10, ".dockerignore")),
		),
		newTech(CategoryDeployment, "Fly.io", 0, file(70, "fly.toml")),
		newTech(CategoryDeployment, "Railway", 0, file(70, "railway.json", "railway.toml")),
		newTech(CategoryDeployment, "Render", 0, file(70, "render.yaml")),
		newTech(CategoryDeployment, "AWS", 0,
			oneOf(
				withVariant("sst", config(60, "sst.config")),
				withVariant("amplify", file(60, "amplify.yml")),
				withVariant("serverless", file(50, "serverless.yml", "serverless.yaml")),
				withVariant("cdk", file(50, "cdk.json")),
			),
		),
		newTech(CategoryDeployment, "Kubernetes", 0,
			kubernetesManifest(60),
			withVariant("helm", file(20, "Chart.yaml", "chart/Chart.yaml", "charts/Chart.yaml")),
		),
		newTech(CategoryDeployment, "Heroku", 0,
			file(50, "Procfile"),
			secondary(file(10, "app.json")),
		),
	)
}
