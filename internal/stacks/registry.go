// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Detector registry and category resolution policies

package stacks

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/sony-level/stackscan/internal/evidence"
)

// Testing sub-slot tags
const (
	TestingUnit = "unit"
	TestingE2E  = "e2e"
)

// RecommendedVariant marks recommendation results in the mcp category
const RecommendedVariant = "recommended"

// e2eTools are inferred as e2e when a testing result carries no tag
var e2eTools = map[string]bool{
	"Playwright":  true,
	"Cypress":     true,
	"Puppeteer":   true,
	"WebdriverIO": true,
}

// unitPreference ranks named unit runners; higher wins over the raw
// confidence comparison when both clear the admission threshold.
var unitPreference = map[string]int{
	"Vitest": 2,
	"Jest":   1,
}

// DetectorError records a detector that failed or panicked
type DetectorError struct {
	Category Category
	Detector string
	Err      error
}

func (e *DetectorError) Error() string {
	return fmt.Sprintf("%s: detector %s: %v", e.Category, e.Detector, e.Err)
}

func (e *DetectorError) Unwrap() error {
	return e.Err
}

// Registry holds the detectors of every category
type Registry struct {
	mu        sync.RWMutex
	detectors map[Category][]Detector
	logger    *slog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry with a slot for every category
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		detectors: make(map[Category][]Detector, len(allCategories)),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, c := range allCategories {
		r.detectors[c] = []Detector{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry creates a registry with all built-in detectors
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.Register(BuiltinDetectors()...)
	return r
}

// Register adds detectors, keeping each category ordered by descending priority
func (r *Registry) Register(detectors ...Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()

	touched := map[Category]bool{}
	for _, d := range detectors {
		if d == nil {
			continue
		}
		c := d.Category()
		if !c.Valid() {
			r.logger.Warn("ignoring detector with unknown category",
				"detector", d.Name(), "category", string(c))
			continue
		}
		r.detectors[c] = append(r.detectors[c], d)
		touched[c] = true
	}

	for c := range touched {
		list := r.detectors[c]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
	}
}

// Detectors returns the detectors of a category in evaluation order
func (r *Registry) Detectors(c Category) []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Detector(nil), r.detectors[c]...)
}

// HasDetectors reports whether any detector is registered for c
func (r *Registry) HasDetectors(c Category) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.detectors[c]) > 0
}

// Categories returns the categories with at least one detector
func (r *Registry) Categories() []Category {
	var out []Category
	for _, c := range allCategories {
		if r.HasDetectors(c) {
			out = append(out, c)
		}
	}
	return out
}

// invoke runs one detector, turning errors and panics into a DetectorError.
// Results returned together with an error are kept; a panic yields none.
func (r *Registry) invoke(ctx context.Context, d Detector, p *evidence.Project) (results []DetectionResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			results = nil
			err = &DetectorError{Category: d.Category(), Detector: d.Name(), Err: fmt.Errorf("panic: %v", rec)}
		}
		if err != nil {
			r.logger.Warn("detector failed", "category", string(d.Category()), "detector", d.Name(), "error", err)
		}
	}()

	raw, derr := d.Detect(ctx, p)
	if derr != nil {
		err = &DetectorError{Category: d.Category(), Detector: d.Name(), Err: derr}
	}
	return normalize(d, raw), err
}

// normalize clamps confidences, drops empty results and guarantees evidence
func normalize(d Detector, raw []DetectionResult) []DetectionResult {
	var out []DetectionResult
	for _, res := range raw {
		res.Confidence = clamp(res.Confidence)
		if res.Confidence == 0 {
			continue
		}
		if res.Name == "" {
			res.Name = d.Name()
		}
		if len(res.Evidence) == 0 {
			res.Evidence = []string{"detected by " + d.Name()}
		}
		out = append(out, res.clone())
	}
	return out
}

// RunSingle returns the first match in priority order.
// Lower priority detectors are not invoked once one matches.
func (r *Registry) RunSingle(ctx context.Context, c Category, p *evidence.Project) (*DetectionResult, error) {
	var errs error
	for _, d := range r.Detectors(c) {
		results, err := r.invoke(ctx, d, p)
		errs = multierr.Append(errs, err)
		if len(results) > 0 {
			res := results[0]
			r.logger.Debug("detector matched", "category", string(c), "detector", d.Name(), "confidence", res.Confidence)
			return &res, errs
		}
	}
	return nil, errs
}

// RunMulti returns every result at or above the admission threshold
func (r *Registry) RunMulti(ctx context.Context, c Category, p *evidence.Project) ([]DetectionResult, error) {
	var (
		out  []DetectionResult
		errs error
	)
	for _, d := range r.Detectors(c) {
		results, err := r.invoke(ctx, d, p)
		errs = multierr.Append(errs, err)
		for _, res := range results {
			if res.Confidence < AdmissionThreshold {
				continue
			}
			r.logger.Debug("detector matched", "category", string(c), "detector", d.Name(), "confidence", res.Confidence)
			out = append(out, res)
		}
	}
	return out, errs
}

// RunTesting fills the unit and e2e slots. Returns nil when both are empty.
func (r *Registry) RunTesting(ctx context.Context, p *evidence.Project) (*TestingStack, error) {
	var (
		ts   TestingStack
		unit []DetectionResult
		errs error
	)
	for _, d := range r.Detectors(CategoryTesting) {
		results, err := r.invoke(ctx, d, p)
		errs = multierr.Append(errs, err)
		for _, res := range results {
			switch testingSlot(res) {
			case TestingE2E:
				if ts.E2E == nil || res.Confidence > ts.E2E.Confidence {
					ts.E2E = &res
				}
			default:
				unit = append(unit, res)
			}
		}
	}
	ts.Unit = pickUnit(unit)
	if ts.Unit == nil && ts.E2E == nil {
		return nil, errs
	}
	return &ts, errs
}

// testingSlot returns the tagged sub-slot or infers it from the name
func testingSlot(res DetectionResult) string {
	switch strings.ToLower(res.Variant) {
	case TestingUnit:
		return TestingUnit
	case TestingE2E:
		return TestingE2E
	}
	if e2eTools[res.Name] {
		return TestingE2E
	}
	return TestingUnit
}

// pickUnit returns the highest confidence candidate, unless it is a ranked
// runner that clears the admission threshold and an admitted runner of
// higher rank exists. The choice does not depend on candidate order
// except between equal confidences.
func pickUnit(candidates []DetectionResult) *DetectionResult {
	var best *DetectionResult
	for i := range candidates {
		if best == nil || candidates[i].Confidence > best.Confidence {
			best = &candidates[i]
		}
	}
	if best == nil {
		return nil
	}

	rank, ranked := unitPreference[best.Name]
	if !ranked || best.Confidence < AdmissionThreshold {
		return best
	}
	for i := range candidates {
		c := &candidates[i]
		r, ok := unitPreference[c.Name]
		if !ok || c.Confidence < AdmissionThreshold {
			continue
		}
		if r > rank || (r == rank && c.Confidence > best.Confidence) {
			best, rank = c, r
		}
	}
	return best
}

// RunMCP splits mcp results into configured servers, the project role
// and recommendations. Only the mcp-project detector fills the project
// role. Returns nil when all three are empty.
func (r *Registry) RunMCP(ctx context.Context, p *evidence.Project) (*MCPStack, error) {
	var (
		m    MCPStack
		errs error
	)
	seen := map[string]bool{}
	for _, d := range r.Detectors(CategoryMCP) {
		results, err := r.invoke(ctx, d, p)
		errs = multierr.Append(errs, err)
		for _, res := range results {
			switch {
			case res.Variant == RecommendedVariant:
				if !seen[res.Name] {
					seen[res.Name] = true
					m.Recommended = append(m.Recommended, res.Name)
				}
			case d.Name() == MCPProjectName:
				if res.Confidence < AdmissionThreshold {
					continue
				}
				if m.ProjectInfo == nil || res.Confidence > m.ProjectInfo.Confidence {
					m.ProjectInfo = &res
					m.IsProject = true
				}
			default:
				m.Detected = append(m.Detected, res)
			}
		}
	}
	if len(m.Detected) == 0 && m.ProjectInfo == nil && len(m.Recommended) == 0 {
		return nil, errs
	}
	return &m, errs
}

// RunAll resolves every category in order. A cancelled context aborts the
// run and returns nil with the context error; detector failures are
// combined into the returned error alongside the assembled stack.
func (r *Registry) RunAll(ctx context.Context, p *evidence.Project) (*DetectedStack, error) {
	stack := &DetectedStack{}
	var errs error

	for _, c := range allCategories {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolve %s: %w", c, err)
		}

		var err error
		switch c.Policy() {
		case PolicySingle:
			var res *DetectionResult
			res, err = r.RunSingle(ctx, c, p)
			stack.setSingle(c, res)
		case PolicyMulti:
			var res []DetectionResult
			res, err = r.RunMulti(ctx, c, p)
			stack.setMulti(c, res)
		case PolicyTesting:
			stack.Testing, err = r.RunTesting(ctx, p)
		case PolicyMCP:
			stack.MCP, err = r.RunMCP(ctx, p)
		}
		errs = multierr.Append(errs, err)
	}

	return stack, errs
}
