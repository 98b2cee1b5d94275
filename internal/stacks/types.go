// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Stack detection types and categories

package stacks

// Category is one of the fixed technology dimensions of a stack
type Category string

// The 17 stack categories
const (
	CategoryFramework       Category = "framework"
	CategoryPackageManager  Category = "packageManager"
	CategoryTesting         Category = "testing"
	CategoryStyling         Category = "styling"
	CategoryDatabase        Category = "database"
	CategoryORM             Category = "orm"
	CategoryAPI             Category = "api"
	CategoryStateManagement Category = "stateManagement"
	CategoryUIComponents    Category = "uiComponents"
	CategoryFormHandling    Category = "formHandling"
	CategoryAuth            Category = "auth"
	CategoryAnalytics       Category = "analytics"
	CategoryPayments        Category = "payments"
	CategoryEmail           Category = "email"
	CategoryDeployment      Category = "deployment"
	CategoryMonorepo        Category = "monorepo"
	CategoryMCP             Category = "mcp"
)

var allCategories = []Category{
	CategoryFramework,
	CategoryPackageManager,
	CategoryTesting,
	CategoryStyling,
	CategoryDatabase,
	CategoryORM,
	CategoryAPI,
	CategoryStateManagement,
	CategoryUIComponents,
	CategoryFormHandling,
	CategoryAuth,
	CategoryAnalytics,
	CategoryPayments,
	CategoryEmail,
	CategoryDeployment,
	CategoryMonorepo,
	CategoryMCP,
}

// AllCategories returns every category in resolution order
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Policy is how a category reconciles results from its detectors
type Policy int

const (
	// PolicySingle returns the first matching detector in priority order
	PolicySingle Policy = iota
	// PolicyMulti keeps every result at or above the admission threshold
	PolicyMulti
	// PolicyTesting splits results into unit and e2e slots
	PolicyTesting
	// PolicyMCP splits configured servers, project role and recommendations
	PolicyMCP
)

func (p Policy) String() string {
	switch p {
	case PolicySingle:
		return "single"
	case PolicyMulti:
		return "multi"
	case PolicyTesting:
		return "testing"
	case PolicyMCP:
		return "mcp"
	}
	return "unknown"
}

// Policy returns the resolution policy for c
func (c Category) Policy() Policy {
	switch c {
	case CategoryAPI, CategoryUIComponents, CategoryFormHandling, CategoryAnalytics, CategoryDeployment:
		return PolicyMulti
	case CategoryTesting:
		return PolicyTesting
	case CategoryMCP:
		return PolicyMCP
	}
	return PolicySingle
}

// Label returns a human readable category name
func (c Category) Label() string {
	switch c {
	case CategoryFramework:
		return "Framework"
	case CategoryPackageManager:
		return "Package Manager"
	case CategoryTesting:
		return "Testing"
	case CategoryStyling:
		return "Styling"
	case CategoryDatabase:
		return "Database"
	case CategoryORM:
		return "ORM"
	case CategoryAPI:
		return "API"
	case CategoryStateManagement:
		return "State Management"
	case CategoryUIComponents:
		return "UI Components"
	case CategoryFormHandling:
		return "Form Handling"
	case CategoryAuth:
		return "Auth"
	case CategoryAnalytics:
		return "Analytics"
	case CategoryPayments:
		return "Payments"
	case CategoryEmail:
		return "Email"
	case CategoryDeployment:
		return "Deployment"
	case CategoryMonorepo:
		return "Monorepo"
	case CategoryMCP:
		return "MCP"
	}
	return string(c)
}

// Confidence bounds and the multi-winner admission floor
const (
	MinConfidence      = 0
	MaxConfidence      = 100
	AdmissionThreshold = 40
)

// DetectionResult is one detector's finding
type DetectionResult struct {
	Name       string   `json:"name"`
	Version    string   `json:"version,omitempty"`
	Variant    string   `json:"variant,omitempty"`
	Confidence int      `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// TestingStack holds the unit and e2e testing slots
type TestingStack struct {
	Unit *DetectionResult `json:"unit,omitempty"`
	E2E  *DetectionResult `json:"e2e,omitempty"`
}

// MCPStack is the compound Model Context Protocol slot
type MCPStack struct {
	Detected    []DetectionResult `json:"detected,omitempty"`
	IsProject   bool              `json:"isProject,omitempty"`
	ProjectInfo *DetectionResult  `json:"projectInfo,omitempty"`
	Recommended []string          `json:"recommended,omitempty"`
}

// DetectedStack is the assembled result, one slot per category.
// Absent slots are nil so an empty stack serialises as {}.
type DetectedStack struct {
	Framework       *DetectionResult  `json:"framework,omitempty"`
	PackageManager  *DetectionResult  `json:"packageManager,omitempty"`
	Testing         *TestingStack     `json:"testing,omitempty"`
	Styling         *DetectionResult  `json:"styling,omitempty"`
	Database        *DetectionResult  `json:"database,omitempty"`
	ORM             *DetectionResult  `json:"orm,omitempty"`
	API             []DetectionResult `json:"api,omitempty"`
	StateManagement *DetectionResult  `json:"stateManagement,omitempty"`
	UIComponents    []DetectionResult `json:"uiComponents,omitempty"`
	FormHandling    []DetectionResult `json:"formHandling,omitempty"`
	Auth            *DetectionResult  `json:"auth,omitempty"`
	Analytics       []DetectionResult `json:"analytics,omitempty"`
	Payments        *DetectionResult  `json:"payments,omitempty"`
	Email           *DetectionResult  `json:"email,omitempty"`
	Deployment      []DetectionResult `json:"deployment,omitempty"`
	Monorepo        *DetectionResult  `json:"monorepo,omitempty"`
	MCP             *MCPStack         `json:"mcp,omitempty"`
}
