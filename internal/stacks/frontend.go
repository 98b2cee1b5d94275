// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// State management, UI component and form handling detectors

package stacks

// StateManagementDetectors returns the state management catalogue
func StateManagementDetectors() []Detector {
	return ranked(
		newTech(CategoryStateManagement, "Redux Toolkit", 0,
			dep(70, "@reduxjs/toolkit"),
			secondary(related(10, "react-redux")),
		),
		newTech(CategoryStateManagement, "Zustand", 0, dep(70, "zustand")),
		newTech(CategoryStateManagement, "Jotai", 0, dep(70, "jotai")),
		newTech(CategoryStateManagement, "Recoil", 0, dep(70, "recoil")),
		newTech(CategoryStateManagement, "MobX", 0,
			dep(70, "mobx"),
			secondary(related(10, "mobx-react", "mobx-react-lite")),
		),
		newTech(CategoryStateManagement, "Pinia", 0, dep(70, "pinia")),
		newTech(CategoryStateManagement, "XState", 0, dep(60, "xstate")),
		newTech(CategoryStateManagement, "Redux", 0,
			dep(60, "redux"),
			secondary(related(10, "react-redux")),
		),
		newTech(CategoryStateManagement, "Vuex", 0, dep(60, "vuex")),
		newTech(CategoryStateManagement, "TanStack Query", 0,
			dep(50, "@tanstack/react-query", "@tanstack/vue-query", "react-query"),
		),
	)
}

// UIComponentDetectors returns the UI component library catalogue
func UIComponentDetectors() []Detector {
	return ranked(
		newTech(CategoryUIComponents, "shadcn/ui", 0,
			file(60, "components.json"),
			secondary(relatedPrefix(20, "@radix-ui/")),
			secondary(related(10, "class-variance-authority")),
			secondary(related(10, "tailwind-merge")),
		),
		newTech(CategoryUIComponents, "Radix UI", 0, depPrefix(50, "@radix-ui/")),
		newTech(CategoryUIComponents, "Material UI", 0,
			dep(70, "@mui/material"),
			secondary(related(10, "@mui/icons-material")),
		),
		newTech(CategoryUIComponents, "Chakra UI", 0, dep(70, "@chakra-ui/react")),
		newTech(CategoryUIComponents, "Ant Design", 0, dep(70, "antd")),
		newTech(CategoryUIComponents, "Mantine", 0, dep(70, "@mantine/core")),
		newTech(CategoryUIComponents, "Headless UI", 0, dep(60, "@headlessui/react", "@headlessui/vue")),
		newTech(CategoryUIComponents, "DaisyUI", 0, dep(60, "daisyui")),
		newTech(CategoryUIComponents, "Bootstrap", 0, dep(60, "bootstrap", "react-bootstrap")),
	)
}

// FormHandlingDetectors returns the form and validation catalogue
func FormHandlingDetectors() []Detector {
	return ranked(
		newTech(CategoryFormHandling, "React Hook Form", 0,
			dep(70, "react-hook-form"),
			secondary(related(10, "@hookform/resolvers")),
		),
		newTech(CategoryFormHandling, "Formik", 0, dep(70, "formik")),
		newTech(CategoryFormHandling, "TanStack Form", 0, dep(70, "@tanstack/react-form", "@tanstack/vue-form", "@tanstack/form-core")),
		newTech(CategoryFormHandling, "VeeValidate", 0, dep(70, "vee-validate")),
		newTech(CategoryFormHandling, "Zod", 0, dep(50, "zod"), tagged("validation")),
		newTech(CategoryFormHandling, "Yup", 0, dep(50, "yup"), tagged("validation")),
		newTech(CategoryFormHandling, "Valibot", 0, dep(50, "valibot"), tagged("validation")),
	)
}
