// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Source resolution: local directories and remote repositories

package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sony-level/stackscan/internal/workspace"
)

// Fetcher resolves a scan source to a local directory.
// Local paths are scanned in place; git URLs are cloned.
type Fetcher struct {
	logger   *slog.Logger
	progress io.Writer
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithLogger sets the fetcher logger
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithProgress streams git clone progress to w
func WithProgress(w io.Writer) Option {
	return func(f *Fetcher) {
		f.progress = w
	}
}

// New creates a fetcher
func New(opts ...Option) *Fetcher {
	f := &Fetcher{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves source. dest is only used, and must not exist yet,
// when source is a git URL.
func (f *Fetcher) Fetch(ctx context.Context, source, dest string) (*Result, error) {
	if source == "" {
		return nil, fmt.Errorf("source is empty")
	}

	switch sourceType := DetectSourceType(source); sourceType {
	case SourceTypeGitHub, SourceTypeGitLab:
		if dest == "" {
			return nil, fmt.Errorf("destination is empty")
		}
		return f.clone(ctx, source, dest, sourceType)
	case SourceTypeLocal:
		root, err := ValidateLocalPath(source)
		if err != nil {
			return nil, err
		}
		return &Result{Source: source, Root: root, SourceType: SourceTypeLocal}, nil
	default:
		return nil, fmt.Errorf("unknown source type for: %s", source)
	}
}

// Checkout resolves source, cloning remote sources into a fresh workspace.
// Workspaces older than workspace.StaleAfter are removed first. The
// returned release func removes that workspace unless it is kept and is
// never nil.
func (f *Fetcher) Checkout(ctx context.Context, source string, cfg workspace.Config) (*Result, func() error, error) {
	noop := func() error { return nil }
	if !IsRemote(source) {
		res, err := f.Fetch(ctx, source, "")
		return res, noop, err
	}

	ws, err := workspace.New(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create workspace: %w", err)
	}
	f.logger.Debug("workspace created", "run_id", ws.RunID, "path", ws.Path, "keep", ws.ShouldKeep())

	if n, err := workspace.CleanupStale(ws.BaseDir, workspace.StaleAfter); err != nil {
		f.logger.Warn("stale workspace cleanup failed", "error", err)
	} else if n > 0 {
		f.logger.Debug("removed stale workspaces", "count", n)
	}

	res, err := f.Fetch(ctx, source, ws.RepoPath())
	if err != nil {
		_ = ws.Cleanup()
		return nil, noop, err
	}
	return res, ws.Cleanup, nil
}

// DetectSourceType determines if the source is a GitHub/GitLab URL or local path
func DetectSourceType(source string) string {
	switch {
	case IsGitHubURL(source):
		return SourceTypeGitHub
	case IsGitLabURL(source):
		return SourceTypeGitLab
	case isLocalPath(source):
		return SourceTypeLocal
	}
	return SourceTypeUnknown
}

// IsRemote reports whether source must be cloned
func IsRemote(source string) bool {
	t := DetectSourceType(source)
	return t == SourceTypeGitHub || t == SourceTypeGitLab
}

// IsGitHubURL checks if the source is a valid GitHub URL
func IsGitHubURL(source string) bool {
	return githubHTTPSPattern.MatchString(source) || githubSSHPattern.MatchString(source)
}

// IsGitLabURL checks if the source is a valid GitLab URL
func IsGitLabURL(source string) bool {
	return gitlabHTTPSPattern.MatchString(source) || gitlabSSHPattern.MatchString(source)
}

// ParseGitURL extracts owner and repo from a GitHub or GitLab URL
func ParseGitURL(url string) (*RepoInfo, error) {
	patterns := []struct {
		platform string
		match    func(string) []string
	}{
		{SourceTypeGitHub, githubHTTPSPattern.FindStringSubmatch},
		{SourceTypeGitHub, githubSSHPattern.FindStringSubmatch},
		{SourceTypeGitLab, gitlabHTTPSPattern.FindStringSubmatch},
		{SourceTypeGitLab, gitlabSSHPattern.FindStringSubmatch},
	}
	for _, p := range patterns {
		if m := p.match(url); m != nil {
			return &RepoInfo{
				Owner:    m[1],
				Repo:     strings.TrimSuffix(m[2], ".git"),
				URL:      url,
				Platform: p.platform,
			}, nil
		}
	}
	return nil, fmt.Errorf("invalid git URL: %s", url)
}

// NormalizeGitURL converts SSH and HTTP forms to an HTTPS clone URL
func NormalizeGitURL(url string) string {
	info, err := ParseGitURL(url)
	if err != nil {
		return url
	}
	return info.CloneURL()
}

// isLocalPath checks if the source appears to be a local path
func isLocalPath(source string) bool {
	if filepath.IsAbs(source) {
		return true
	}
	if source == "." || source == ".." ||
		strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../") {
		return true
	}
	if _, err := os.Stat(source); err == nil {
		return true
	}
	// anything that does not look like a URL is treated as a path
	return !strings.Contains(source, "://") && !strings.Contains(source, "@")
}

// ValidateLocalPath resolves path and checks that it is a readable directory
func ValidateLocalPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("path does not exist: %s", absPath)
		case errors.Is(err, fs.ErrPermission):
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", absPath)
	}
	return absPath, nil
}
