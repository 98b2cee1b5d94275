// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace types and constants

package workspace

import "time"

// StaleAfter is the age past which leftover workspaces are removed
const StaleAfter = 24 * time.Hour

const (
	TempDirPrefix = ".stackscan-temp"
	RunIDPrefix   = "ss"
	RepoSubdir    = "repo"
)

// Workspace is a scratch directory holding one remote clone
type Workspace struct {
	RunID   string
	Path    string
	BaseDir string
	keep    bool
}

// Config holds configuration for workspace creation
type Config struct {
	BaseDir string // Defaults to the system temp directory
	Keep    bool   // Preserve the clone after the scan
}
