// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace cleanup

package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Cleanup removes the workspace unless it is kept
func (w *Workspace) Cleanup() error {
	if w.keep || !w.Exists() {
		return nil
	}

	if err := os.RemoveAll(w.Path); err != nil {
		return fmt.Errorf("failed to cleanup workspace %s: %w", w.Path, err)
	}

	// parent stays when other runs still use it
	_ = os.Remove(filepath.Join(w.BaseDir, TempDirPrefix))
	return nil
}

// CleanupStale removes workspaces under baseDir older than maxAge and
// returns how many were removed
func CleanupStale(baseDir string, maxAge time.Duration) (int, error) {
	tempDir := filepath.Join(baseDir, TempDirPrefix)

	entries, err := os.ReadDir(tempDir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read temp directory %s: %w", tempDir, err)
	}

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(tempDir, entry.Name())); err == nil {
			cleaned++
		}
	}

	_ = os.Remove(tempDir)
	return cleaned, nil
}
