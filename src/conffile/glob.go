package conffile

import (
	"path/filepath"
	"strings"
)

// Excludes reports whether the external tool would skip path under this
// policy's exclude patterns. Patterns carrying a separator or ** match the
// slash-normalized path; bare patterns match any path segment, which is
// how directory names like .git prune whole subtrees.
func (p *Policy) Excludes(path string) bool {
	return matchAnyPattern(p.Exclude, path)
}

func matchAnyPattern(patterns []string, path string) bool {
	if len(patterns) == 0 {
		return false
	}
	norm := filepath.ToSlash(path)
	segments := strings.Split(norm, "/")
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
			if MatchGlob(pattern, norm) {
				return true
			}
			continue
		}
		for _, seg := range segments {
			if MatchGlob(pattern, seg) {
				return true
			}
		}
	}
	return false
}

// MatchGlob extends filepath.Match with "**" (zero or more path segments).
// Pattern and path use "/" separators.
func MatchGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	idx := strings.Index(pattern, "**")
	prefix := pattern[:idx]
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	if prefix != "" {
		prefix = strings.TrimRight(prefix, "/")
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		path = strings.TrimLeft(strings.TrimPrefix(path, prefix), "/")
	}

	// ** at the end swallows the rest
	if suffix == "" {
		return true
	}

	// try the suffix against every tail of the remaining path
	parts := strings.Split(path, "/")
	for i := 0; i <= len(parts); i++ {
		if MatchGlob(suffix, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

// ValidPattern checks exclude-glob syntax without matching anything.
func ValidPattern(pattern string) error {
	probe := strings.ReplaceAll(filepath.ToSlash(pattern), "**", "*")
	_, err := filepath.Match(probe, "probe")
	return err
}
