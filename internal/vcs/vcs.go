// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package vcs reads the branch and commit a git working tree is checked out at,
// straight from the repository metadata.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const DetachedBranch = "detached"

var ErrNotARepository = errors.New("not a git repository")

type Info struct {
	Branch string `json:"branch" yaml:"branch"`
	Commit string `json:"commit" yaml:"commit"`
}

// ShortCommit returns the first seven characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// Lookup finds the git repository containing dir, including linked worktrees,
// and resolves its HEAD.
func Lookup(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Info{}, fmt.Errorf("%s: %w", dir, ErrNotARepository)
	}
	if err != nil {
		return Info{}, fmt.Errorf("open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	branch := head.Name().Short()
	if head.Name() == plumbing.HEAD {
		branch = DetachedBranch
	}

	return Info{
		Branch: branch,
		Commit: head.Hash().String(),
	}, nil
}
