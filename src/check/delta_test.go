package check

import (
	"context"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func commitAll(t *testing.T, wt *git.Worktree, msg string) {
	t.Helper()
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.invalid", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestDeltaChangedFiles_Worktree(t *testing.T) {
	t.Setenv("FLAKECONF_TARGET_BRANCH", "master")
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	writeConfig(t, dir, ".flake8", "[flake8]\nignore = E501\n")
	writeConfig(t, dir, "setup.cfg", "[flake8]\nmax-line-length = 100\n")
	commitAll(t, wt, "initial")

	writeConfig(t, dir, ".flake8", "[flake8]\nignore = E501, W503\n")

	d := &Delta{RootDir: dir}
	changed, err := d.ChangedFiles(context.Background())
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if changed == nil {
		t.Fatal("want a baseline, got nil")
	}
	if !changed[".flake8"] {
		t.Errorf("modified .flake8 missing from %v", changed)
	}
	if changed["setup.cfg"] {
		t.Errorf("untouched setup.cfg reported in %v", changed)
	}
}

func TestDeltaChangedFiles_BranchDiff(t *testing.T) {
	t.Setenv("FLAKECONF_TARGET_BRANCH", "master")
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	writeConfig(t, dir, ".flake8", "[flake8]\nignore = E501\n")
	writeConfig(t, dir, "setup.cfg", "[flake8]\nmax-line-length = 100\n")
	commitAll(t, wt, "initial")

	// on the target branch itself the delta is the last commit
	writeConfig(t, dir, ".flake8", "[flake8]\nignore = E501, W503\n")
	commitAll(t, wt, "tweak ignore list")

	d := &Delta{RootDir: dir}
	changed, err := d.ChangedFiles(context.Background())
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if !changed[".flake8"] {
		t.Errorf(".flake8 from last commit missing in %v", changed)
	}
	if changed["setup.cfg"] {
		t.Errorf("setup.cfg unchanged since parent, got %v", changed)
	}
}

func TestDeltaChangedFiles_NotARepo(t *testing.T) {
	d := &Delta{RootDir: t.TempDir()}
	changed, err := d.ChangedFiles(context.Background())
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if changed != nil {
		t.Fatalf("want nil baseline outside a repository, got %v", changed)
	}
}

func TestDeltaTarget(t *testing.T) {
	t.Setenv("FLAKECONF_TARGET_BRANCH", "release")
	d := &Delta{TargetBranch: "develop"}
	if got := d.target(nil); got != "release" {
		t.Errorf("env override: got %q, want release", got)
	}

	t.Setenv("FLAKECONF_TARGET_BRANCH", "")
	if got := d.target(nil); got != "develop" {
		t.Errorf("configured branch: got %q, want develop", got)
	}
}

func TestFilterChanged(t *testing.T) {
	root := "/repo"
	paths := []string{"/repo/.flake8", "/repo/sub/tox.ini"}

	got := FilterChanged(root, paths, map[string]bool{"sub/tox.ini": true})
	if len(got) != 1 || got[0] != "/repo/sub/tox.ini" {
		t.Fatalf("FilterChanged = %v", got)
	}

	if got := FilterChanged(root, paths, nil); len(got) != 2 {
		t.Fatalf("nil set keeps everything, got %v", got)
	}
}
