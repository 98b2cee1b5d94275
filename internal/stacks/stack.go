// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Slot access and threshold filtering for DetectedStack

package stacks

// Single returns the slot of a single-winner category
func (s *DetectedStack) Single(c Category) *DetectionResult {
	if s == nil {
		return nil
	}
	switch c {
	case CategoryFramework:
		return s.Framework
	case CategoryPackageManager:
		return s.PackageManager
	case CategoryStyling:
		return s.Styling
	case CategoryDatabase:
		return s.Database
	case CategoryORM:
		return s.ORM
	case CategoryStateManagement:
		return s.StateManagement
	case CategoryAuth:
		return s.Auth
	case CategoryPayments:
		return s.Payments
	case CategoryEmail:
		return s.Email
	case CategoryMonorepo:
		return s.Monorepo
	}
	return nil
}

func (s *DetectedStack) setSingle(c Category, r *DetectionResult) {
	switch c {
	case CategoryFramework:
		s.Framework = r
	case CategoryPackageManager:
		s.PackageManager = r
	case CategoryStyling:
		s.Styling = r
	case CategoryDatabase:
		s.Database = r
	case CategoryORM:
		s.ORM = r
	case CategoryStateManagement:
		s.StateManagement = r
	case CategoryAuth:
		s.Auth = r
	case CategoryPayments:
		s.Payments = r
	case CategoryEmail:
		s.Email = r
	case CategoryMonorepo:
		s.Monorepo = r
	}
}

// Multi returns the slot of a multi-winner category
func (s *DetectedStack) Multi(c Category) []DetectionResult {
	if s == nil {
		return nil
	}
	switch c {
	case CategoryAPI:
		return s.API
	case CategoryUIComponents:
		return s.UIComponents
	case CategoryFormHandling:
		return s.FormHandling
	case CategoryAnalytics:
		return s.Analytics
	case CategoryDeployment:
		return s.Deployment
	}
	return nil
}

func (s *DetectedStack) setMulti(c Category, rs []DetectionResult) {
	if len(rs) == 0 {
		rs = nil
	}
	switch c {
	case CategoryAPI:
		s.API = rs
	case CategoryUIComponents:
		s.UIComponents = rs
	case CategoryFormHandling:
		s.FormHandling = rs
	case CategoryAnalytics:
		s.Analytics = rs
	case CategoryDeployment:
		s.Deployment = rs
	}
}

// IsEmpty reports whether no slot is populated
func (s *DetectedStack) IsEmpty() bool {
	return s == nil || len(s.Categories()) == 0
}

// Categories returns the populated categories in resolution order
func (s *DetectedStack) Categories() []Category {
	if s == nil {
		return nil
	}
	var found []Category
	for _, c := range allCategories {
		present := false
		switch c.Policy() {
		case PolicySingle:
			present = s.Single(c) != nil
		case PolicyMulti:
			present = len(s.Multi(c)) > 0
		case PolicyTesting:
			present = s.Testing != nil
		case PolicyMCP:
			present = s.MCP != nil
		}
		if present {
			found = append(found, c)
		}
	}
	return found
}

// Filter returns a copy of the stack keeping only results with
// confidence >= min. Emptied arrays and testing slots collapse to nil.
// The mcp slot is passed through untouched. Filtering is idempotent.
func (s *DetectedStack) Filter(min int) *DetectedStack {
	out := &DetectedStack{}
	if s == nil {
		return out
	}

	for _, c := range allCategories {
		switch c.Policy() {
		case PolicySingle:
			out.setSingle(c, keepResult(s.Single(c), min))
		case PolicyMulti:
			out.setMulti(c, keepResults(s.Multi(c), min))
		}
	}

	if s.Testing != nil {
		t := &TestingStack{
			Unit: keepResult(s.Testing.Unit, min),
			E2E:  keepResult(s.Testing.E2E, min),
		}
		if t.Unit != nil || t.E2E != nil {
			out.Testing = t
		}
	}

	out.MCP = s.MCP.clone()

	return out
}

func keepResult(r *DetectionResult, min int) *DetectionResult {
	if r == nil || r.Confidence < min {
		return nil
	}
	c := r.clone()
	return &c
}

func keepResults(rs []DetectionResult, min int) []DetectionResult {
	var kept []DetectionResult
	for _, r := range rs {
		if r.Confidence >= min {
			kept = append(kept, r.clone())
		}
	}
	return kept
}

func (r DetectionResult) clone() DetectionResult {
	r.Evidence = append([]string(nil), r.Evidence...)
	return r
}

func (m *MCPStack) clone() *MCPStack {
	if m == nil {
		return nil
	}
	out := &MCPStack{
		IsProject:   m.IsProject,
		Recommended: append([]string(nil), m.Recommended...),
	}
	for _, d := range m.Detected {
		out.Detected = append(out.Detected, d.clone())
	}
	if m.ProjectInfo != nil {
		info := m.ProjectInfo.clone()
		out.ProjectInfo = &info
	}
	if len(out.Recommended) == 0 {
		out.Recommended = nil
	}
	return out
}
