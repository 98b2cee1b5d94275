// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scanner types and constants

package scanner

import (
	"errors"
	"time"

	"github.com/sony-level/stackscan/internal/stacks"
)

// DefaultMinConfidence is the post-pass threshold when none is configured
const DefaultMinConfidence = 40

// Root validation errors. These are the only errors Scan returns.
var (
	ErrProjectNotFound = errors.New("project root does not exist")
	ErrNotDirectory    = errors.New("project root is not a directory")
)

// Options holds configuration for scanning. The zero value filters at
// DefaultMinConfidence; set IncludeLowConfidence to keep every result.
type Options struct {
	IncludeLowConfidence bool // Keep every non-zero result regardless of MinConfidence
	MinConfidence        int  // Post-pass threshold, 1..100 (0: DefaultMinConfidence)
}

// DefaultOptions returns the default scan options
func DefaultOptions() Options {
	return Options{MinConfidence: DefaultMinConfidence}
}

// EffectiveMinConfidence returns the threshold actually applied by the post-pass
func (o Options) EffectiveMinConfidence() int {
	if o.IncludeLowConfidence {
		return 1
	}
	switch {
	case o.MinConfidence == 0:
		return DefaultMinConfidence
	case o.MinConfidence < stacks.MinConfidence:
		return stacks.MinConfidence
	case o.MinConfidence > stacks.MaxConfidence:
		return stacks.MaxConfidence
	}
	return o.MinConfidence
}

// ScanResult is the outcome of one scan
type ScanResult struct {
	ProjectRoot  string                `json:"projectRoot"`
	Stack        *stacks.DetectedStack `json:"stack"`
	ScanTime     int64                 `json:"scanTime"` // Milliseconds
	ScanDuration time.Duration         `json:"-"`
	Errors       []string              `json:"errors,omitempty"`
}

// HasErrors reports whether the scan was only partially successful
func (r *ScanResult) HasErrors() bool {
	return len(r.Errors) > 0
}
