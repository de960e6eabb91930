package service

import (
	"path/filepath"

	git "github.com/go-git/go-git/v6"
)

// worktreeStatus inspects the git worktree holding a local target.
// It returns nil for remote URLs, files outside a repository, or on any git error.
func worktreeStatus(location string) *GitStatus {
	if !filepath.IsAbs(location) {
		return nil
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(location), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil
	}
	root := wt.Filesystem.Root()
	rel, err := filepath.Rel(root, location)
	if err != nil {
		return nil
	}
	ret := &GitStatus{Root: root, File: filepath.ToSlash(rel)}
	if idx, err := repo.Storer.Index(); err == nil {
		if _, err := idx.Entry(ret.File); err == nil {
			ret.Tracked = true
		}
	}
	if !ret.Tracked {
		return ret
	}
	status, err := wt.Status()
	if err != nil {
		return ret
	}
	if fs, ok := status[ret.File]; ok {
		ret.Modified = fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified
	}
	return ret
}
