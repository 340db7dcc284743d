package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Frame geometry. Rows indent four spaces and open with a gutter bar; the
// inner width is what Separator and Close draw between the corner glyph
// and the line end.
const (
	gutter     = "    "
	innerWidth = 61
)

func rule(n int) string {
	return strings.Repeat("─", n)
}

// Section renders one box-drawing framed block of command output.
type Section struct {
	w     io.Writer
	name  string
	color bool
}

// NewSection opens a section and writes its header line. A non-zero
// elapsed is shown right-aligned in the header.
func NewSection(w io.Writer, name string, elapsed time.Duration, color bool) *Section {
	s := &Section{w: w, name: name, color: color}

	left := fmt.Sprintf("── %s ", name)
	right := "──"
	if elapsed > 0 {
		right = fmt.Sprintf(" %s ──", formatElapsed(elapsed))
	}
	pad := innerWidth + 4 - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	header := left + rule(pad) + right
	if color {
		header = "\033[2;36m" + header + "\033[0m"
	}
	fmt.Fprintf(w, "\n%s%s\n", gutter, header)
	return s
}

// Row writes a content line inside the frame.
func (s *Section) Row(format string, args ...any) {
	fmt.Fprintf(s.w, "%s│ %s\n", gutter, fmt.Sprintf(format, args...))
}

// Separator writes a mid-section divider.
func (s *Section) Separator() {
	fmt.Fprintf(s.w, "%s├%s\n", gutter, rule(innerWidth))
}

// Close writes the section footer.
func (s *Section) Close() {
	fmt.Fprintf(s.w, "%s└%s\n", gutter, rule(innerWidth))
}

// StatusIcon returns the icon for a status keyword: ✓ for success, ✗ for
// failed, ⊘ for anything in between.
func StatusIcon(status string, color bool) string {
	var glyph, ansi string
	switch status {
	case "success":
		glyph, ansi = "✓", "\033[32m"
	case "failed":
		glyph, ansi = "✗", "\033[31m"
	default:
		glyph, ansi = "⊘", "\033[33m"
	}
	if !color {
		return glyph
	}
	return ansi + glyph + "\033[0m"
}

// Dimmed renders text in the faint gray used for secondary detail.
func Dimmed(text string, color bool) string {
	if !color {
		return text
	}
	return "\033[90m" + text + "\033[0m"
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	return fmt.Sprintf("%dm%.1fs", mins, d.Seconds()-float64(mins*60))
}
