// Package gitinfo resolves the version-control state of the project being
// packaged so builds can be traced back to a source commit.
package gitinfo

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// SourceInfo describes the source tree a build was produced from.
type SourceInfo struct {
	Commit string // full commit hash of HEAD
	Branch string // branch name, empty when detached
}

// Short returns the abbreviated commit hash.
func (s *SourceInfo) Short() string {
	if s == nil || len(s.Commit) < 7 {
		return ""
	}
	return s.Commit[:7]
}

// Describe inspects the repository containing dir and returns its HEAD state.
// Directories that are not inside a git repository return (nil, nil): source
// stamping is optional and absence is not a build problem.
func Describe(dir string) (*SourceInfo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		// Fresh repository with no commits yet.
		return nil, nil
	}

	info := &SourceInfo{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, nil
}
