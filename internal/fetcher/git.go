// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Git cloning implementation

package fetcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// clone makes a shallow, single-branch clone of the default branch
func (f *Fetcher) clone(ctx context.Context, source, dest, sourceType string) (*Result, error) {
	repo, err := ParseGitURL(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse git URL: %w", err)
	}
	cloneURL := repo.CloneURL()

	f.logger.Info("cloning repository", "repo", repo.Slug(), "platform", repo.Platform, "url", cloneURL, "dest", dest)

	_, err = git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:           cloneURL,
		Progress:      f.progress,
		Depth:         1,
		SingleBranch:  true,
		ReferenceName: plumbing.HEAD,
		Tags:          git.NoTags,
	})
	if err != nil {
		// partial clones are removed
		_ = os.RemoveAll(dest)
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	root, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve clone path: %w", err)
	}

	files, bytes, err := countFiles(root)
	if err != nil {
		f.logger.Warn("could not count cloned files", "error", err)
	}
	f.logger.Debug("clone complete", "files", files, "bytes", bytes)

	return &Result{
		Source:     source,
		Root:       root,
		SourceType: sourceType,
		Cloned:     true,
		Repo:       repo,
		Files:      files,
		Bytes:      bytes,
	}, nil
}

// countFiles counts regular files and their bytes, skipping .git
func countFiles(dir string) (int, int64, error) {
	var (
		files int
		bytes int64
	)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files++
			bytes += info.Size()
		}
		return nil
	})
	return files, bytes, err
}
