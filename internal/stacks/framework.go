// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Framework detectors

package stacks

// Framework priorities. Meta-frameworks are evaluated before the
// base frameworks they depend on.
const (
	PriorityNext      = 100
	PriorityNuxt      = 95
	PrioritySvelteKit = 90
	PriorityRemix     = 88
	PriorityAstro     = 85
	PriorityGatsby    = 80
	PriorityAngular   = 75
	PriorityNestJS    = 70
	PriorityServer    = 50
	PriorityUILibrary = 30
	PriorityReact     = 10
)

// viteVariant tags a base framework built with Vite
func viteVariant() signal {
	return secondary(withVariant("vite", config(10, "vite.config")))
}

// FrameworkDetectors returns the framework catalogue
func FrameworkDetectors() []Detector {
	return []Detector{
		newTech(CategoryFramework, "Next.js", PriorityNext,
			dep(60, "next"),
			config(30, "next.config"),
			secondary(oneOf(
				withVariant("app-router", dir(30, "app", "src/app")),
				withVariant("pages-router", dir(20, "pages", "src/pages")),
			)),
		),
		newTech(CategoryFramework, "Nuxt", PriorityNuxt,
			dep(60, "nuxt"),
			config(30, "nuxt.config"),
		),
		newTech(CategoryFramework, "SvelteKit", PrioritySvelteKit,
			dep(60, "@sveltejs/kit"),
			config(30, "svelte.config"),
			secondary(dir(10, "src/routes")),
		),
		newTech(CategoryFramework, "Remix", PriorityRemix,
			depPrefix(60, "@remix-run/"),
			config(30, "remix.config"),
			secondary(dir(10, "app/routes")),
		),
		newTech(CategoryFramework, "Astro", PriorityAstro,
			dep(60, "astro"),
			config(30, "astro.config"),
		),
		newTech(CategoryFramework, "Gatsby", PriorityGatsby,
			dep(60, "gatsby"),
			config(30, "gatsby-config"),
		),
		newTech(CategoryFramework, "Angular", PriorityAngular,
			dep(60, "@angular/core"),
			file(30, "angular.json"),
		),
		newTech(CategoryFramework, "NestJS", PriorityNestJS,
			dep(60, "@nestjs/core"),
			file(30, "nest-cli.json"),
		),
		newTech(CategoryFramework, "Express", PriorityServer, dep(60, "express")),
		newTech(CategoryFramework, "Fastify", PriorityServer, dep(60, "fastify")),
		newTech(CategoryFramework, "Hono", PriorityServer, dep(60, "hono")),
		newTech(CategoryFramework, "Koa", PriorityServer, dep(60, "koa")),
		newTech(CategoryFramework, "Vue", PriorityUILibrary,
			dep(60, "vue"),
			viteVariant(),
		),
		newTech(CategoryFramework, "Svelte", PriorityUILibrary,
			dep(60, "svelte"),
			viteVariant(),
		),
		newTech(CategoryFramework, "SolidJS", PriorityUILibrary,
			dep(60, "solid-js"),
			viteVariant(),
		),
		newTech(CategoryFramework, "React", PriorityReact,
			dep(60, "react"),
			secondary(related(10, "react-dom")),
			viteVariant(),
		),
	}
}
