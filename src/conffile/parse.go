package conffile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/ini.v1"

	"github.com/flakeconf/flakeconf/src/ruleset"
)

// Load reads and parses a configuration file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes the [flake8] section of data into a File. Absent keys get
// the external tool's defaults; extend-ignore, extend-select and
// extend-exclude fold into the base lists the way the external tool
// composes them. Malformed values (bad code syntax, non-positive
// thresholds) are errors carrying path and line.
func Parse(path string, data []byte) (*File, error) {
	keyLine, docLine, docs := scanSection(data)

	cfg, err := ini.LoadSources(ini.LoadOptions{AllowPythonMultilineValues: true}, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sec, err := cfg.GetSection(SectionName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSection)
	}

	f := &File{
		Path:    path,
		present: map[string]bool{},
		keyLine: keyLine,
		docLine: docLine,
	}
	p := &f.Policy
	p.Docs = docs
	p.Extra = map[string]string{}

	var (
		ignoreBase, selectBase     []ruleset.Code
		extendIgnore, extendSelect []ruleset.Code
	)
	for _, key := range sec.Keys() {
		name := NormalizeKey(key.Name())
		val := key.String()
		f.present[name] = true

		switch name {
		case "ignore":
			if ignoreBase, err = parseCodes(val); err != nil {
				return nil, keyErr(path, keyLine, name, err)
			}
		case "extend-ignore":
			if extendIgnore, err = parseCodes(val); err != nil {
				return nil, keyErr(path, keyLine, name, err)
			}
		case "select":
			if selectBase, err = parseCodes(val); err != nil {
				return nil, keyErr(path, keyLine, name, err)
			}
		case "extend-select":
			if extendSelect, err = parseCodes(val); err != nil {
				return nil, keyErr(path, keyLine, name, err)
			}
		case "max-line-length":
			if p.MaxLineLength, err = parseBound(val); err != nil {
				return nil, keyErr(path, keyLine, name, err)
			}
		case "max-complexity":
			if p.MaxComplexity, err = parseBound(val); err != nil {
				return nil, keyErr(path, keyLine, name, err)
			}
		case "exclude", "extend-exclude":
			p.Exclude = append(p.Exclude, splitList(val)...)
		default:
			p.Extra[name] = canonicalValue(val)
		}
	}

	if f.present["ignore"] {
		f.WrittenIgnore = append(f.WrittenIgnore, ignoreBase...)
	}
	f.WrittenIgnore = append(f.WrittenIgnore, extendIgnore...)
	if f.present["select"] {
		f.WrittenSelect = append(f.WrittenSelect, selectBase...)
	}
	f.WrittenSelect = append(f.WrittenSelect, extendSelect...)

	if !f.present["ignore"] {
		ignoreBase = append([]ruleset.Code(nil), ruleset.DefaultIgnore...)
	}
	if !f.present["select"] {
		selectBase = append([]ruleset.Code(nil), ruleset.DefaultSelect...)
	}
	p.Ignore = append(ignoreBase, extendIgnore...)
	p.Select = append(selectBase, extendSelect...)
	if !f.present["max-line-length"] {
		p.MaxLineLength = defaultMaxLineLength
	}
	return f, nil
}

// defaultMaxLineLength is what the external tool enforces when the key is
// absent.
const defaultMaxLineLength = 79

func keyErr(path string, keyLine map[string]int, name string, err error) error {
	return fmt.Errorf("%s:%d: %s: %w", path, keyLine[name], name, err)
}

func parseCodes(val string) ([]ruleset.Code, error) {
	items := splitList(val)
	out := make([]ruleset.Code, 0, len(items))
	for _, item := range items {
		c, err := ruleset.ParseCode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseBound(val string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("want a positive integer, got %q", val)
	}
	return n, nil
}

// splitList splits comma-separated values. The external tool also accepts
// bare whitespace separators, including the newlines configparser keeps
// from hanging indents, so any run of commas and spaces splits.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// NormalizeKey maps a raw option name to its canonical spelling. The
// external tool treats max_line_length and max-line-length as the same
// option, so everything downstream compares the dashed lowercase form.
func NormalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// canonicalValue flattens hanging-indent values to trimmed lines so a
// value compares equal no matter which continuation style carried it.
func canonicalValue(v string) string {
	if !strings.Contains(v, "\n") {
		return v
	}
	var lines []string
	for _, ln := range strings.Split(v, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

// scanSection walks the raw lines once to record where keys sit and which
// rule codes the comment block documents. ini.v1 attaches comments to the
// following key, which loses both the per-code structure and the line
// numbers findings need.
func scanSection(data []byte) (keyLine, docLine map[string]int, docs map[string]string) {
	keyLine = map[string]int{}
	docLine = map[string]int{}
	docs = map[string]string{}

	in := false
	ln := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			in = strings.TrimSpace(trimmed[1:len(trimmed)-1]) == SectionName
		case !in || trimmed == "":
		case trimmed[0] == '#' || trimmed[0] == ';':
			if code, desc, ok := parseDocComment(trimmed); ok {
				if _, dup := docs[code]; !dup {
					docs[code] = desc
					docLine[code] = ln
				}
			}
		default:
			// assignments start at column 0; indented lines continue the
			// previous value
			if line[0] == ' ' || line[0] == '\t' {
				continue
			}
			if i := strings.IndexAny(line, "=:"); i > 0 {
				name := NormalizeKey(line[:i])
				if _, seen := keyLine[name]; !seen {
					keyLine[name] = ln
				}
			}
		}
	}
	return keyLine, docLine, docs
}

// parseDocComment reads "# E501  line too long" style lines. The first
// field must be an uppercase rule code; letters-only words longer than two
// runes (FIX, XXX) are rejected so prose does not register as docs.
func parseDocComment(line string) (code, desc string, ok bool) {
	s := strings.TrimLeft(line, "#; \t")
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", "", false
	}
	tok := strings.TrimRight(fields[0], ":,")
	if tok != strings.ToUpper(tok) {
		return "", "", false
	}
	c, err := ruleset.ParseCode(tok)
	if err != nil {
		return "", "", false
	}
	if len(c) > 2 && !strings.ContainsAny(string(c), "0123456789") {
		return "", "", false
	}
	desc = strings.TrimSpace(strings.TrimPrefix(s, fields[0]))
	desc = strings.TrimLeft(desc, "-: \t")
	if desc == "" {
		return "", "", false
	}
	return string(c), desc, true
}
