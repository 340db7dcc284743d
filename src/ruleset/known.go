package ruleset

import "sort"

// known maps real rule codes to the short descriptions their providers
// publish. The table is not exhaustive (plugins mint new codes freely);
// it covers the pycodestyle, pyflakes and mccabe sets that configurations
// reference in practice, and backs effective-set computation and explain
// output.
var known = map[Code]string{
	// pycodestyle: indentation
	"E101": "indentation contains mixed spaces and tabs",
	"E111": "indentation is not a multiple of four",
	"E112": "expected an indented block",
	"E113": "unexpectedly indented",
	"E114": "indentation is not a multiple of four (comment)",
	"E115": "expected an indented block (comment)",
	"E116": "unexpected indentation (comment)",
	"E117": "over-indented",
	"E121": "continuation line under-indented for hanging indent",
	"E122": "continuation line missing indentation or outdented",
	"E123": "closing bracket does not match indentation of opening line's bracket",
	"E124": "closing bracket does not match visual indentation",
	"E125": "continuation line with same indent as next logical line",
	"E126": "continuation line over-indented for hanging indent",
	"E127": "continuation line over-indented for visual indent",
	"E128": "continuation line under-indented for visual indent",
	"E129": "visually indented line with same indent as next logical line",
	"E131": "continuation line unaligned for hanging indent",

	// pycodestyle: whitespace
	"E201": "whitespace after '('",
	"E202": "whitespace before ')'",
	"E203": "whitespace before ':'",
	"E211": "whitespace before parenthesis",
	"E221": "multiple spaces before operator",
	"E222": "multiple spaces after operator",
	"E225": "missing whitespace around operator",
	"E226": "missing whitespace around arithmetic operator",
	"E228": "missing whitespace around modulo operator",
	"E231": "missing whitespace after ','",
	"E241": "multiple spaces after comma",
	"E251": "unexpected spaces around keyword / parameter equals",
	"E261": "at least two spaces before inline comment",
	"E262": "inline comment should start with '# '",
	"E265": "block comment should start with '# '",
	"E266": "too many leading '#' for block comment",
	"E271": "multiple spaces after keyword",
	"E272": "multiple spaces before keyword",

	// pycodestyle: blank lines
	"E301": "expected one blank line, got zero",
	"E302": "expected two blank lines, got fewer",
	"E303": "too many blank lines",
	"E305": "expected two blank lines after class or function definition",
	"E306": "expected one blank line before a nested definition",

	// pycodestyle: imports
	"E401": "multiple imports on one line",
	"E402": "module level import not at top of file",

	// pycodestyle: line length
	"E501": "line too long",
	"E502": "the backslash is redundant between brackets",

	// pycodestyle: statements
	"E701": "multiple statements on one line (colon)",
	"E702": "multiple statements on one line (semicolon)",
	"E703": "statement ends with a semicolon",
	"E704": "statement on same line as def",
	"E711": "comparison to None should be 'if cond is None:'",
	"E712": "comparison to True should be 'if cond is True:' or 'if cond:'",
	"E713": "test for membership should be 'not in x'",
	"E714": "test for object identity should be 'is not'",
	"E721": "do not compare types, for exact checks use 'is'",
	"E722": "do not use bare 'except'",
	"E731": "do not assign a lambda expression, use a def",
	"E741": "ambiguous variable name",

	// pycodestyle: runtime
	"E901": "SyntaxError or IndentationError",
	"E902": "IOError",

	// pycodestyle warnings
	"W191": "indentation contains tabs",
	"W291": "trailing whitespace",
	"W292": "no newline at end of file",
	"W293": "whitespace on blank line",
	"W391": "blank line at end of file",
	"W503": "line break before binary operator",
	"W504": "line break after binary operator",
	"W605": "invalid escape sequence",

	// pyflakes
	"F401": "module imported but unused",
	"F402": "import module from line shadowed by loop variable",
	"F403": "'from module import *' used; unable to detect undefined names",
	"F405": "name may be undefined, or defined from star imports",
	"F501": "invalid % format literal",
	"F541": "f-string without any placeholders",
	"F601": ".has_key() is deprecated, use 'in'",
	"F631": "assertion is always true, perhaps remove parentheses",
	"F632": "use ==/!= to compare str, bytes, and int literals",
	"F701": "break statement outside of a for or while loop",
	"F811": "redefinition of unused name",
	"F821": "undefined name",
	"F823": "local variable referenced before assignment",
	"F841": "local variable is assigned to but never used",

	// mccabe
	"C901": "function is too complex",
}

// Describe returns the provider description for an exactly known code.
func Describe(c Code) (string, bool) {
	desc, ok := known[c]
	return desc, ok
}

// KnownCodes returns every code in the table, sorted.
func KnownCodes() []Code {
	out := make([]Code, 0, len(known))
	for c := range known {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EffectiveKnown returns the known codes that stay active under the given
// select and ignore lists, sorted. It is the computable stand-in for the
// open-ended universe of plugin codes.
func EffectiveKnown(selected, ignored []Code) []Code {
	var out []Code
	for c := range known {
		if Active(c, selected, ignored) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
