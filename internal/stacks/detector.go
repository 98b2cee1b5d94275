// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Detector contract and the additive confidence scorer

package stacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/sony-level/stackscan/internal/evidence"
)

// Detector probes a project for one technology of one category
type Detector interface {
	Category() Category
	Name() string
	Priority() int
	// Detect returns nil when no signal fired. It must not write to the project.
	Detect(ctx context.Context, p *evidence.Project) ([]DetectionResult, error)
}

// BaseDetector provides common functionality for detectors
type BaseDetector struct {
	category Category
	name     string
	priority int
}

// NewBaseDetector creates a new base detector
func NewBaseDetector(category Category, name string, priority int) BaseDetector {
	return BaseDetector{category: category, name: name, priority: priority}
}

// Category returns the detector category
func (d BaseDetector) Category() Category {
	return d.category
}

// Name returns the detector name
func (d BaseDetector) Name() string {
	return d.name
}

// Priority returns the detector priority
func (d BaseDetector) Priority() int {
	return d.priority
}

// scorer accumulates fixed-weight signal contributions.
// Every increment carries its evidence line, in order.
type scorer struct {
	points   int
	evidence []string
	version  string
	variant  string
}

func (s *scorer) add(points int, format string, args ...any) {
	if points <= 0 {
		return
	}
	s.points += points
	s.evidence = append(s.evidence, fmt.Sprintf(format, args...)+fmt.Sprintf(" (+%d)", points))
}

func (s *scorer) fired() bool {
	return s.points > 0
}

func (s *scorer) result(name string) *DetectionResult {
	if !s.fired() {
		return nil
	}
	return &DetectionResult{
		Name:       name,
		Version:    s.version,
		Variant:    s.variant,
		Confidence: clamp(s.points),
		Evidence:   append([]string(nil), s.evidence...),
	}
}

func clamp(confidence int) int {
	switch {
	case confidence < MinConfidence:
		return MinConfidence
	case confidence > MaxConfidence:
		return MaxConfidence
	}
	return confidence
}

// signal is one probe contributing to a scorer
type signal func(p *evidence.Project, s *scorer)

// techDetector is a detector described as an ordered list of signals
type techDetector struct {
	BaseDetector
	signals []signal
}

func newTech(category Category, name string, priority int, signals ...signal) *techDetector {
	return &techDetector{
		BaseDetector: NewBaseDetector(category, name, priority),
		signals:      signals,
	}
}

// Detect runs every signal and reports the accumulated score
func (d *techDetector) Detect(ctx context.Context, p *evidence.Project) ([]DetectionResult, error) {
	s := &scorer{}
	for _, sig := range d.signals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sig(p, s)
	}
	if r := s.result(d.name); r != nil {
		return []DetectionResult{*r}, nil
	}
	return nil, nil
}

// ranked assigns descending priorities in listing order to detectors
// built without an explicit one.
func ranked(detectors ...*techDetector) []Detector {
	out := make([]Detector, 0, len(detectors))
	for i, d := range detectors {
		if d.priority == 0 {
			d.priority = (len(detectors) - i) * 10
		}
		out = append(out, d)
	}
	return out
}

// Signal helpers

// dep fires when any of names is declared, recording its version
func dep(weight int, names ...string) signal {
	return func(p *evidence.Project, s *scorer) {
		name, ok := p.HasDependency(names...)
		if !ok {
			return
		}
		if s.version == "" {
			s.version = p.DependencyVersion(name)
		}
		s.add(weight, "%s in %s", name, p.DependencySection(name))
	}
}

// depPrefix fires when a dependency starts with prefix, e.g. "@radix-ui/"
func depPrefix(weight int, prefix string) signal {
	return func(p *evidence.Project, s *scorer) {
		name, ok := p.DependencyWithPrefix(prefix)
		if !ok {
			return
		}
		if s.version == "" {
			s.version = p.DependencyVersion(name)
		}
		s.add(weight, "%s in %s", name, p.DependencySection(name))
	}
}

// related is dep without version capture, for companion packages
func related(weight int, names ...string) signal {
	return func(p *evidence.Project, s *scorer) {
		if name, ok := p.HasDependency(names...); ok {
			s.add(weight, "%s in %s", name, p.DependencySection(name))
		}
	}
}

// relatedPrefix is depPrefix without version capture
func relatedPrefix(weight int, prefix string) signal {
	return func(p *evidence.Project, s *scorer) {
		if name, ok := p.DependencyWithPrefix(prefix); ok {
			s.add(weight, "%s in %s", name, p.DependencySection(name))
		}
	}
}

// config fires on the first <base>.<ext> found for any of bases
func config(weight int, bases ...string) signal {
	return func(p *evidence.Project, s *scorer) {
		for _, base := range bases {
			if rel, ok := p.FindConfig(base); ok {
				s.add(weight, "config file %s", rel)
				return
			}
		}
	}
}

// file fires on the first of rels present as a file
func file(weight int, rels ...string) signal {
	return func(p *evidence.Project, s *scorer) {
		if rel, ok := p.FirstFile(rels...); ok {
			s.add(weight, "%s present", rel)
		}
	}
}

// dir fires on the first of rels present as a directory
func dir(weight int, rels ...string) signal {
	return func(p *evidence.Project, s *scorer) {
		if rel, ok := p.FirstDir(rels...); ok {
			s.add(weight, "%s/ directory", strings.TrimSuffix(rel, "/"))
		}
	}
}

// script fires when a package script invokes tool
func script(weight int, tool string) signal {
	return func(p *evidence.Project, s *scorer) {
		if name, ok := p.ScriptUsing(tool); ok {
			s.add(weight, "%s used by script %q", tool, name)
		}
	}
}

// secondary only applies sig once an anchoring signal has already fired
func secondary(sig signal) signal {
	return func(p *evidence.Project, s *scorer) {
		if s.fired() {
			sig(p, s)
		}
	}
}

// tagged sets a fixed variant once the detector has matched
func tagged(variant string) signal {
	return func(_ *evidence.Project, s *scorer) {
		if s.fired() {
			s.variant = variant
		}
	}
}

// withVariant wraps sig so that, when it adds points, the variant is set
func withVariant(variant string, sig signal) signal {
	return func(p *evidence.Project, s *scorer) {
		before := s.points
		sig(p, s)
		if s.points > before {
			s.variant = variant
		}
	}
}

// oneOf applies the first of sigs that adds points
func oneOf(sigs ...signal) signal {
	return func(p *evidence.Project, s *scorer) {
		for _, sig := range sigs {
			before := s.points
			sig(p, s)
			if s.points > before {
				return
			}
		}
	}
}

// majorVariant sets variant "v<major>" from the declared version of pkg
func majorVariant(pkg string) signal {
	return func(p *evidence.Project, s *scorer) {
		if !s.fired() {
			return
		}
		if major, ok := evidence.MajorVersion(p.DependencyVersion(pkg)); ok {
			s.variant = fmt.Sprintf("v%d", major)
		}
	}
}
