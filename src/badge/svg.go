package badge

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
)

// Generate renders a shields.io-compatible flat SVG badge. A measured font
// is embedded via @font-face; the default metrics skip embedding and lean
// on the viewer's Verdana stack.
func (e *Engine) Generate(b Badge) string {
	lw := e.sideWidth(b.Label)
	vw := e.sideWidth(b.Value)
	total := lw + vw

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20">`, total)

	svg.WriteString(`<defs>`)
	if data := e.metrics.FontData(); len(data) > 0 {
		fmt.Fprintf(&svg, `<style type="text/css">%s</style>`, fontFaceCSS(e.metrics.FontName(), data))
	}
	svg.WriteString(`<linearGradient id="b" x2="0" y2="100%">` +
		`<stop offset="0" stop-color="#bbb" stop-opacity=".1"/>` +
		`<stop offset="1" stop-opacity=".1"/>` +
		`</linearGradient>`)
	svg.WriteString(`</defs>`)

	fmt.Fprintf(&svg, `<mask id="a"><rect width="%d" height="20" rx="3" fill="#fff"/></mask>`, total)
	fmt.Fprintf(&svg, `<g mask="url(#a)">`)
	fmt.Fprintf(&svg, `<rect width="%d" height="20" fill="#555"/>`, lw)
	fmt.Fprintf(&svg, `<rect x="%d" width="%d" height="20" fill="%s"/>`, lw, vw, xmlEscape(b.Color))
	fmt.Fprintf(&svg, `<rect width="%d" height="20" fill="url(#b)"/>`, total)
	svg.WriteString(`</g>`)

	family := xmlEscape(fmt.Sprintf("'%s',Verdana,Geneva,sans-serif", e.metrics.FontName()))
	fmt.Fprintf(&svg, `<g fill="#fff" text-anchor="middle" font-family="%s" font-size="%g">`,
		family, e.metrics.FontSize())
	writeText(&svg, lw/2, b.Label)
	writeText(&svg, lw+vw/2, b.Value)
	svg.WriteString(`</g>`)

	svg.WriteString(`</svg>`)
	return svg.String()
}

// sideWidth is the measured text width plus horizontal padding.
func (e *Engine) sideWidth(text string) int {
	return int(math.Round(e.metrics.TextWidth(text))) + 10
}

// writeText draws one badge text: a dark drop shadow a pixel low, then the
// text itself.
func writeText(svg *strings.Builder, x int, text string) {
	t := xmlEscape(text)
	fmt.Fprintf(svg, `<text x="%d" y="15" fill="#010101" fill-opacity=".3">%s</text>`, x, t)
	fmt.Fprintf(svg, `<text x="%d" y="14">%s</text>`, x, t)
}

// fontFaceCSS returns a CSS @font-face rule with the font embedded as
// base64.
func fontFaceCSS(name string, data []byte) string {
	short, css := "ttf", "truetype"
	if detectFontFormat(data) == "otf" {
		short, css = "otf", "opentype"
	}
	return fmt.Sprintf(
		`@font-face{font-family:'%s';src:url(data:font/%s;base64,%s) format('%s')}`,
		name, short, base64.StdEncoding.EncodeToString(data), css,
	)
}

// detectFontFormat sniffs TTF vs OTF from the leading magic bytes.
func detectFontFormat(data []byte) string {
	if len(data) >= 4 && string(data[:4]) == "OTTO" {
		return "otf"
	}
	return "ttf"
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
