package badge

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	e := New(DefaultMetrics(11))
	svg := e.Generate(Badge{Label: "flakeconf", Value: "passed", Color: "#4c1"})

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg root element: %s", svg[:60])
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("unterminated svg document")
	}
	if !strings.Contains(svg, ">flakeconf</text>") {
		t.Errorf("label text missing from badge")
	}
	if !strings.Contains(svg, ">passed</text>") {
		t.Errorf("value text missing from badge")
	}
	if !strings.Contains(svg, `fill="#4c1"`) {
		t.Errorf("value rect color missing from badge")
	}
	// Both label and value are drawn twice: shadow pass plus fill pass.
	if n := strings.Count(svg, ">passed</text>"); n != 2 {
		t.Errorf("value drawn %d times, want 2", n)
	}
}

func TestGenerateEscapesText(t *testing.T) {
	e := New(DefaultMetrics(11))
	svg := e.Generate(Badge{Label: "a<b>", Value: `"x" & 'y'`, Color: "#4c1"})

	if strings.Contains(svg, "<b>") {
		t.Errorf("label markup not escaped")
	}
	if !strings.Contains(svg, "a&lt;b&gt;") {
		t.Errorf("escaped label missing")
	}
	if !strings.Contains(svg, "&quot;x&quot; &amp; &apos;y&apos;") {
		t.Errorf("escaped value missing")
	}
}

func TestGenerateNoFontEmbedding(t *testing.T) {
	// Default metrics carry no font binary, so the badge must not embed
	// a @font-face rule and must fall back to the viewer's font stack.
	e := New(DefaultMetrics(11))
	svg := e.Generate(Badge{Label: "lint", Value: "ok", Color: "#4c1"})

	if strings.Contains(svg, "@font-face") {
		t.Errorf("unexpected @font-face with default metrics")
	}
	if !strings.Contains(svg, "Verdana,Geneva,sans-serif") {
		t.Errorf("fallback font stack missing")
	}
}

func TestDefaultMetricsWidths(t *testing.T) {
	m := DefaultMetrics(11)

	wide := m.TextWidth("WWWW")
	narrow := m.TextWidth("llll")
	if wide <= narrow {
		t.Errorf("W (%0.1f) should measure wider than l (%0.1f)", wide, narrow)
	}
	if m.TextWidth("") != 0 {
		t.Errorf("empty string should measure zero")
	}
	if m.FontName() != "Verdana" {
		t.Errorf("FontName() = %q, want Verdana", m.FontName())
	}
	if m.FontSize() != 11 {
		t.Errorf("FontSize() = %v, want 11", m.FontSize())
	}
	if m.FontData() != nil {
		t.Errorf("default metrics should carry no font binary")
	}

	// Non-positive sizes fall back to the standard badge size.
	if DefaultMetrics(0).FontSize() != 11 {
		t.Errorf("DefaultMetrics(0) should default to size 11")
	}
}

func TestStatusColor(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{"passed", "#4c1"},
		{"success", "#4c1"},
		{"warning", "#dfb317"},
		{"critical", "#e05d44"},
		{"failed", "#e05d44"},
		{"anything-else", "#4c1"},
	}
	for _, c := range cases {
		if got := StatusColor(c.status); got != c.want {
			t.Errorf("StatusColor(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	cases := []struct {
		path    string
		wantErr bool
	}{
		{"badge.svg", false},
		{"docs/badge.svg", false},
		{"./badge.svg", false},
		{"", true},
		{"/tmp/badge.svg", true},
		{"../badge.svg", true},
		{"docs/../../badge.svg", true},
	}
	for _, c := range cases {
		err := ValidateOutputPath(c.path)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", c.path, err, c.wantErr)
		}
	}
}

func TestDetectFontFormat(t *testing.T) {
	if got := detectFontFormat([]byte{0x4F, 0x54, 0x54, 0x4F, 0x00}); got != "otf" {
		t.Errorf("OTTO magic detected as %q, want otf", got)
	}
	if got := detectFontFormat([]byte{0x00, 0x01, 0x00, 0x00}); got != "ttf" {
		t.Errorf("TTF magic detected as %q, want ttf", got)
	}
	if got := detectFontFormat(nil); got != "ttf" {
		t.Errorf("short data detected as %q, want ttf", got)
	}
}
