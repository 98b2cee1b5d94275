// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scratch workspaces for remote clones

package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	idMutex       sync.Mutex
	lastTimestamp string
	lastSuffix    string
	lastCounter   int
)

// ResetRunIDState resets the run ID generator (for tests)
func ResetRunIDState() {
	idMutex.Lock()
	defer idMutex.Unlock()
	lastTimestamp = ""
	lastSuffix = ""
	lastCounter = 0
}

// GenerateRunID returns ss-YYYYMMDD-HHMMSS-xxx, where xxx is three random hex
// characters. Repeated calls within one second append a zero-padded counter.
func GenerateRunID() (string, error) {
	idMutex.Lock()
	defer idMutex.Unlock()

	timestamp := time.Now().Format("20060102-150405")
	if timestamp == lastTimestamp {
		lastCounter++
		return fmt.Sprintf("%s-%s-%s-%03d", RunIDPrefix, timestamp, lastSuffix, lastCounter), nil
	}

	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	lastTimestamp = timestamp
	lastSuffix = hex.EncodeToString(buf)[:3]
	lastCounter = 0
	return fmt.Sprintf("%s-%s-%s", RunIDPrefix, timestamp, lastSuffix), nil
}

// New creates the workspace directory. The repo subdirectory is left for the
// clone to create.
func New(cfg Config) (*Workspace, error) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = os.TempDir()
	}

	runID, err := GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	path := filepath.Join(cfg.BaseDir, TempDirPrefix, runID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory %s: %w", path, err)
	}

	return &Workspace{
		RunID:   runID,
		Path:    path,
		BaseDir: cfg.BaseDir,
		keep:    cfg.Keep,
	}, nil
}

// RepoPath returns the clone destination
func (w *Workspace) RepoPath() string {
	return filepath.Join(w.Path, RepoSubdir)
}

// Exists checks if the workspace directory exists
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.Path)
	return err == nil && info.IsDir()
}

// SetKeep sets whether to preserve the workspace on cleanup
func (w *Workspace) SetKeep(keep bool) {
	w.keep = keep
}

// ShouldKeep returns whether the workspace should be preserved
func (w *Workspace) ShouldKeep() bool {
	return w.keep
}

func (w *Workspace) String() string {
	return fmt.Sprintf("Workspace{RunID: %s, Path: %s, Keep: %v}", w.RunID, w.Path, w.keep)
}
