package cmd

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
)

// changedThemeFiles lists files reported as modified, added, or untracked
// by git status in the repository containing repoPath. Deleted files are
// excluded: partial deploys run in additive mode and cannot remove remote
// files. The deploy core still receives the batch explicitly; this helper
// only plays the role of the caller that determines what changed.
func changedThemeFiles(repoPath string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository at %s: %w", repoPath, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open git worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("read git status: %w", err)
	}

	var files []string
	for path, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
