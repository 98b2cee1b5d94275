// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Test runner detectors

package stacks

// TestingDetectors returns the testing catalogue. Mocha and Puppeteer are
// left untagged; the registry infers their slot from the name.
func TestingDetectors() []Detector {
	return ranked(
		newTech(CategoryTesting, "Vitest", 0,
			dep(50, "vitest"),
			config(40, "vitest.config", "vitest.workspace"),
			secondary(script(10, "vitest")),
			tagged(TestingUnit),
		),
		newTech(CategoryTesting, "Jest", 0,
			dep(50, "jest"),
			config(40, "jest.config"),
			secondary(script(10, "jest")),
			tagged(TestingUnit),
		),
		newTech(CategoryTesting, "Mocha", 0,
			dep(50, "mocha"),
			oneOf(config(40, ".mocharc"), file(40, ".mocharc.yml", ".mocharc.yaml")),
		),
		newTech(CategoryTesting, "Playwright", 0,
			dep(50, "@playwright/test"),
			config(40, "playwright.config"),
			tagged(TestingE2E),
		),
		newTech(CategoryTesting, "Cypress", 0,
			dep(50, "cypress"),
			config(40, "cypress.config"),
			secondary(dir(10, "cypress")),
			tagged(TestingE2E),
		),
		newTech(CategoryTesting, "Puppeteer", 0,
			dep(50, "puppeteer"),
		),
	)
}
