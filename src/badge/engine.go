package badge

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Engine renders SVG badges with one font's metrics.
type Engine struct {
	metrics *FontMetrics
}

// New creates a badge engine over the given font metrics.
func New(metrics *FontMetrics) *Engine {
	return &Engine{metrics: metrics}
}

// Badge is the content of a single badge.
type Badge struct {
	Label string // left side text
	Value string // right side text
	Color string // hex color for the value side, e.g. "#4c1"
}

var statusColors = map[string]string{
	"passed":   "#4c1",
	"success":  "#4c1",
	"warning":  "#dfb317",
	"critical": "#e05d44",
	"failed":   "#e05d44",
}

// StatusColor maps a status keyword to a badge hex color. Unknown
// keywords color green.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#4c1"
}

// ValidateOutputPath rejects targets outside the repository: absolute
// paths and any path that climbs with "..".
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("badge: output path required")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("badge: output path must be repository-relative, got absolute %q", path)
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("badge: output path %q escapes the repository", path)
	}
	return nil
}
