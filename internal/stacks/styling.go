// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Styling detectors

package stacks

import (
	"github.com/sony-level/stackscan/internal/evidence"
)

const cssModulesPattern = "{src,app,components,styles}/**/*.module.{css,scss,sass}"

func cssModules(weight int) signal {
	return func(p *evidence.Project, s *scorer) {
		if matches := p.Glob(cssModulesPattern); len(matches) > 0 {
			s.add(weight, "CSS module %s", matches[0])
		}
	}
}

// StylingDetectors returns the styling catalogue
func StylingDetectors() []Detector {
	return ranked(
		newTech(CategoryStyling, "Tailwind CSS", 0,
			dep(50, "tailwindcss"),
			config(40, "tailwind.config"),
			secondary(related(10, "@tailwindcss/postcss", "@tailwindcss/vite")),
			majorVariant("tailwindcss"),
		),
		newTech(CategoryStyling, "styled-components", 0,
			dep(70, "styled-components"),
			secondary(related(10, "babel-plugin-styled-components")),
		),
		newTech(CategoryStyling, "Emotion", 0,
			depPrefix(70, "@emotion/"),
		),
		newTech(CategoryStyling, "Vanilla Extract", 0,
			depPrefix(70, "@vanilla-extract/"),
		),
		newTech(CategoryStyling, "Sass", 0,
			dep(60, "sass", "node-sass", "sass-embedded"),
		),
		newTech(CategoryStyling, "CSS Modules", 0,
			cssModules(45),
		),
	)
}
