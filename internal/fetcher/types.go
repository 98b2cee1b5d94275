// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Fetcher types and constants

package fetcher

import (
	"regexp"
)

// Source type constants
const (
	SourceTypeUnknown = "unknown"
	SourceTypeGitHub  = "github"
	SourceTypeGitLab  = "gitlab"
	SourceTypeLocal   = "local"
)

// Repository URL patterns
var (
	// https://github.com/user/repo or https://github.com/user/repo.git
	githubHTTPSPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	// git@github.com:user/repo.git
	githubSSHPattern = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	// https://gitlab.com/group/repo, nested subgroups included
	gitlabHTTPSPattern = regexp.MustCompile(`^https?://gitlab\.com/((?:[^/]+/)*[^/]+)/([^/]+?)(?:\.git)?/?$`)
	// git@gitlab.com:group/repo.git
	gitlabSSHPattern = regexp.MustCompile(`^git@gitlab\.com:((?:[^/]+/)*[^/]+)/([^/]+?)(?:\.git)?$`)
)

// Result describes where a source can be scanned from
type Result struct {
	Source     string    // Original source argument
	Root       string    // Absolute directory to scan
	SourceType string    // github, gitlab or local
	Cloned     bool      // Root is a fresh clone inside the workspace
	Repo       *RepoInfo // Set for git sources
	Files      int       // Files in the clone, .git excluded
	Bytes      int64     // Bytes in the clone, .git excluded
}

// RepoInfo contains parsed git repository information
type RepoInfo struct {
	Owner    string
	Repo     string
	URL      string
	Platform string // "github" or "gitlab"
}

// CloneURL returns the HTTPS clone URL
func (r *RepoInfo) CloneURL() string {
	switch r.Platform {
	case SourceTypeGitHub:
		return "https://github.com/" + r.Owner + "/" + r.Repo + ".git"
	case SourceTypeGitLab:
		return "https://gitlab.com/" + r.Owner + "/" + r.Repo + ".git"
	}
	return r.URL
}

// Slug returns owner/repo
func (r *RepoInfo) Slug() string {
	return r.Owner + "/" + r.Repo
}
