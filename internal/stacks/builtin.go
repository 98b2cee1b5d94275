// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Built-in detector catalogue

package stacks

// BuiltinDetectors returns every built-in detector across all categories
func BuiltinDetectors() []Detector {
	groups := [][]Detector{
		FrameworkDetectors(),
		PackageManagerDetectors(),
		TestingDetectors(),
		StylingDetectors(),
		DatabaseDetectors(),
		ORMDetectors(),
		APIDetectors(),
		StateManagementDetectors(),
		UIComponentDetectors(),
		FormHandlingDetectors(),
		AuthDetectors(),
		AnalyticsDetectors(),
		PaymentDetectors(),
		EmailDetectors(),
		DeploymentDetectors(),
		MonorepoDetectors(),
		{
			NewMCPConfigDetector(),
			NewMCPProjectDetector(),
			NewRecommendationDetector(),
		},
	}

	var all []Detector
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
