package ruleset

import (
	"fmt"
	"regexp"
	"strings"
)

// Code is a rule identifier as it appears in select and ignore lists: one
// to three ASCII letters followed by up to four digits. A code with a
// truncated or absent digit run names a whole family; "E1" covers every
// E1xx rule and bare "E" covers the category.
type Code string

var codePattern = regexp.MustCompile(`^[A-Z]{1,3}[0-9]{0,4}$`)

// ParseCode validates and canonicalizes a single rule code.
func ParseCode(raw string) (Code, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("empty rule code")
	}
	if !codePattern.MatchString(s) {
		return "", fmt.Errorf("invalid rule code %q: want letters then digits (e.g. E501, W6, C901)", raw)
	}
	return Code(s), nil
}

// Category returns the leading letter part ("E501" -> "E").
func (c Code) Category() string {
	i := 0
	for i < len(c) && c[i] >= 'A' && c[i] <= 'Z' {
		i++
	}
	return string(c[:i])
}

// Covers reports whether c, read as a prefix, applies to other. The
// external tool matches configured entries by plain string prefix, so
// "E1" covers E121 and bare "E" covers the whole category.
func (c Code) Covers(other Code) bool {
	return strings.HasPrefix(string(other), string(c))
}
