package ruleset

// Defaults the external tool applies when a configuration omits the keys.
var (
	DefaultSelect = []Code{"E", "W", "F", "C"}
	DefaultIgnore = []Code{"E121", "E123", "E126", "E226", "E24", "E704", "W503", "W504"}
)

// Decision records how a code resolves against configured select and
// ignore lists.
type Decision struct {
	Code     Code
	Selected bool
	// Winner is the configured entry that decided the outcome. Empty when
	// no entry covers the code at all.
	Winner Code
}

// Decide resolves a code the way the external linter does: the most
// specific configured prefix wins. On equal specificity ignore wins,
// since an explicit silence is deliberate.
func Decide(code Code, selected, ignored []Code) Decision {
	sel := bestMatch(code, selected)
	ign := bestMatch(code, ignored)
	d := Decision{Code: code}
	switch {
	case sel == "" && ign == "":
	case ign == "" || len(sel) > len(ign):
		d.Selected = true
		d.Winner = sel
	default:
		d.Winner = ign
	}
	return d
}

// Active is shorthand for Decide(...).Selected.
func Active(code Code, selected, ignored []Code) bool {
	return Decide(code, selected, ignored).Selected
}

func bestMatch(code Code, entries []Code) Code {
	var best Code
	for _, e := range entries {
		if e.Covers(code) && len(e) > len(best) {
			best = e
		}
	}
	return best
}
