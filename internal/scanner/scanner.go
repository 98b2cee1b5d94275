// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Main scanner logic

package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/sony-level/stackscan/internal/evidence"
	"github.com/sony-level/stackscan/internal/stacks"
)

// Scanner runs the detector registry against project roots.
// It holds no per-scan state and may be shared between goroutines.
type Scanner struct {
	registry *stacks.Registry
	opts     Options
	logger   *slog.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithRegistry replaces the default registry
func WithRegistry(r *stacks.Registry) Option {
	return func(s *Scanner) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithLogger sets the scanner logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scanner. A registry with all built-in detectors is used
// unless WithRegistry is given.
func New(opts Options, options ...Option) *Scanner {
	s := &Scanner{
		opts:   opts,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.registry == nil {
		s.registry = stacks.NewDefaultRegistry(stacks.WithLogger(s.logger))
	}
	return s
}

// Scan detects the stack of the project at root.
// Only an invalid root is returned as an error; everything else is
// recorded in ScanResult.Errors.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	start := time.Now()

	absRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{ProjectRoot: absRoot}

	project := evidence.Open(absRoot)
	if err := project.ManifestError(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	stack, err := s.registry.RunAll(ctx, project)
	if stack == nil {
		stack = &stacks.DetectedStack{}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("detection aborted: %v", err))
		}
	} else {
		for _, e := range multierr.Errors(err) {
			result.Errors = append(result.Errors, e.Error())
		}
	}

	result.Stack = stack.Filter(s.opts.EffectiveMinConfidence())
	result.ScanDuration = time.Since(start)
	result.ScanTime = result.ScanDuration.Milliseconds()

	s.logger.Info("scan complete",
		"root", absRoot,
		"categories", len(result.Stack.Categories()),
		"errors", len(result.Errors),
		"duration", result.ScanDuration,
	)

	return result, nil
}

// resolveRoot makes root absolute and checks that it is a directory
func resolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrProjectNotFound, abs)
		}
		return "", fmt.Errorf("access %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return abs, nil
}
