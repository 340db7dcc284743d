package conffile

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// DefaultFilenames are the files the external tool reads configuration
// from, in the precedence order it applies within one directory.
var DefaultFilenames = []string{".flake8", "setup.cfg", "tox.ini"}

// Discover walks root and returns the paths of configuration candidates:
// files matching one of the given names (DefaultFilenames when empty) that
// carry a [flake8] section, plus every .flake8 file regardless (a
// dedicated file is configuration by intent, and malformed ones should be
// reported, not skipped). Hidden directories and paths matching the
// exclude patterns are pruned.
func Discover(root string, filenames, excludes []string) ([]string, error) {
	if len(filenames) == 0 {
		filenames = DefaultFilenames
	}
	want := map[string]bool{}
	for _, n := range filenames {
		want[n] = true
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || matchAnyPattern(excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !want[d.Name()] || matchAnyPattern(excludes, rel) {
			return nil
		}
		if d.Name() == ".flake8" {
			found = append(found, path)
			return nil
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			// unreadable candidate: let the per-file load report it
			found = append(found, path)
			return nil
		}
		if hasSection(data) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

// FindUp locates the nearest configuration file at or above dir, stopping
// at the git worktree root when dir sits inside a repository.
func FindUp(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	stop := ""
	if repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		if wt, err := repo.Worktree(); err == nil {
			stop = wt.Filesystem.Root()
		}
	}

	for cur := abs; ; {
		for _, name := range DefaultFilenames {
			path := filepath.Join(cur, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if name == ".flake8" || hasSection(data) {
				return path, nil
			}
		}
		if cur == stop {
			break
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return "", fmt.Errorf("no flake8 configuration found at or above %s", dir)
}

func hasSection(data []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if strings.TrimSpace(line[1:len(line)-1]) == SectionName {
				return true
			}
		}
	}
	return false
}
