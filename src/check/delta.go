package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// Delta finds configuration files touched relative to a baseline, so
// --changed runs only re-verify what a change could have broken.
type Delta struct {
	RootDir      string
	TargetBranch string
	Verbose      bool
}

// ChangedFiles returns repo-relative paths changed in the worktree plus
// those differing from the target branch. A nil map means no usable
// baseline (not a repository, diff failed): scan everything.
func (d *Delta) ChangedFiles(ctx context.Context) (map[string]bool, error) {
	repo, err := git.PlainOpen(d.RootDir)
	if err != nil {
		if d.Verbose {
			fmt.Fprintf(os.Stderr, "delta: not a git repo, checking all files\n")
		}
		return nil, nil
	}

	changed := map[string]bool{}

	wt, err := repo.Worktree()
	if err == nil {
		status, serr := wt.Status()
		if serr != nil {
			if d.Verbose {
				fmt.Fprintf(os.Stderr, "delta: worktree status failed: %v, checking all files\n", serr)
			}
			return nil, nil
		}
		for path, s := range status {
			if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
				continue
			}
			changed[path] = true
		}
	}

	branchChanged, err := d.branchChanges(ctx, repo)
	if err != nil {
		if d.Verbose {
			fmt.Fprintf(os.Stderr, "delta: branch diff failed: %v, checking all files\n", err)
		}
		return nil, nil
	}
	for path := range branchChanged {
		changed[path] = true
	}
	return changed, nil
}

func (d *Delta) branchChanges(ctx context.Context, repo *git.Repository) (map[string]bool, error) {
	target := d.target(repo)
	if target == "" {
		return nil, nil
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}

	targetRef, err := repo.Reference(plumbing.NewBranchReferenceName(target), true)
	if err != nil {
		targetRef, err = repo.Reference(plumbing.NewRemoteReferenceName("origin", target), true)
		if err != nil {
			return nil, nil // target branch absent: worktree diff is all we have
		}
	}
	targetCommit, err := repo.CommitObject(targetRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting target commit: %w", err)
	}

	// On the target branch itself diff the latest commit against its
	// parent, so pushes to the default branch still get a delta.
	if headCommit.Hash == targetCommit.Hash {
		if headCommit.NumParents() == 0 {
			return nil, nil
		}
		parent, perr := headCommit.Parent(0)
		if perr != nil {
			return nil, nil
		}
		targetCommit = parent
	}

	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, err
	}
	targetTree, err := targetCommit.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTreeWithOptions(ctx, targetTree, headTree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	changed := map[string]bool{}
	for _, change := range changes {
		if name := changeName(change); name != "" {
			changed[name] = true
		}
	}
	return changed, nil
}

// target resolves the baseline branch: explicit env var, configured
// value, the usual CI variables, then the remote's default branch.
func (d *Delta) target(repo *git.Repository) string {
	if branch := os.Getenv("FLAKECONF_TARGET_BRANCH"); branch != "" {
		return branch
	}
	if d.TargetBranch != "" {
		return d.TargetBranch
	}
	for _, v := range []string{
		"CI_MERGE_REQUEST_TARGET_BRANCH_NAME", // GitLab CI
		"GITHUB_BASE_REF",                     // GitHub Actions
		"BITBUCKET_PR_DESTINATION_BRANCH",     // Bitbucket
		"CHANGE_TARGET",                       // Jenkins
	} {
		if branch := os.Getenv(v); branch != "" {
			return branch
		}
	}
	// symbolic target of origin/HEAD, not the commit it points at
	if ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", "HEAD"), false); err == nil {
		target := ref.Target().String()
		if rest, ok := strings.CutPrefix(target, "refs/remotes/origin/"); ok {
			return rest
		}
	}
	return "main"
}

func changeName(change *object.Change) string {
	action, err := change.Action()
	if err != nil {
		return ""
	}
	switch action {
	case merkletrie.Insert, merkletrie.Modify:
		return change.To.Name
	case merkletrie.Delete:
		return change.From.Name
	}
	return ""
}

// FilterChanged keeps the paths present in the changed set. Paths are made
// relative to root before matching; a nil set keeps everything.
func FilterChanged(root string, paths []string, changed map[string]bool) []string {
	if changed == nil {
		return paths
	}
	var kept []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)
		if changed[rel] || changed[strings.TrimPrefix(rel, "./")] {
			kept = append(kept, p)
		}
	}
	return kept
}
