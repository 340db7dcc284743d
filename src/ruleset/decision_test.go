package ruleset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecide_MostSpecificPrefixWins(t *testing.T) {
	selected := []Code{"E"}
	ignored := []Code{"E1", "E2", "E3"}

	cases := []struct {
		code       Code
		selectedOK bool
		winner     Code
	}{
		// Ignoring the E1/E2/E3 families must not silence the rest of E.
		{"E402", true, "E"},
		{"E501", true, "E"},
		{"E121", false, "E1"},
		{"E231", false, "E2"},
		{"E303", false, "E3"},
	}
	for _, tc := range cases {
		d := Decide(tc.code, selected, ignored)
		if d.Selected != tc.selectedOK || d.Winner != tc.winner {
			t.Fatalf("Decide(%q) = {Selected:%v Winner:%q}, want {Selected:%v Winner:%q}",
				tc.code, d.Selected, d.Winner, tc.selectedOK, tc.winner)
		}
	}
}

func TestDecide_LongerIgnoreBeatsShorterSelect(t *testing.T) {
	d := Decide("E501", []Code{"E"}, []Code{"E501"})
	if d.Selected {
		t.Fatalf("E501 should be ignored when listed exactly, got %+v", d)
	}
	if d.Winner != "E501" {
		t.Fatalf("winner = %q, want E501", d.Winner)
	}
}

func TestDecide_LongerSelectBeatsShorterIgnore(t *testing.T) {
	d := Decide("E402", []Code{"E402"}, []Code{"E"})
	if !d.Selected || d.Winner != "E402" {
		t.Fatalf("expected exact select to win over category ignore, got %+v", d)
	}
}

func TestDecide_TieGoesToIgnore(t *testing.T) {
	d := Decide("E402", []Code{"E4"}, []Code{"E4"})
	if d.Selected {
		t.Fatalf("equal specificity should resolve to ignored, got %+v", d)
	}
}

func TestDecide_NothingCovers(t *testing.T) {
	d := Decide("B008", []Code{"E", "W"}, []Code{"E1"})
	if d.Selected || d.Winner != "" {
		t.Fatalf("unselected category should be inactive with no winner, got %+v", d)
	}
}

func TestEffectiveKnown_KeepsLaterFamilies(t *testing.T) {
	active := EffectiveKnown([]Code{"E"}, []Code{"E1", "E2", "E3"})
	got := map[Code]bool{}
	for _, c := range active {
		got[c] = true
	}
	if !got["E402"] {
		t.Fatalf("E402 missing from effective set: %v", active)
	}
	if got["E121"] || got["E231"] || got["E303"] {
		t.Fatalf("ignored families leaked into effective set: %v", active)
	}
	for _, c := range active {
		if c.Category() != "E" {
			t.Fatalf("selected only E, effective set contains %q", c)
		}
	}
}

func TestEffectiveKnown_EmptyWhenEverythingIgnored(t *testing.T) {
	if got := EffectiveKnown([]Code{"E"}, []Code{"E"}); len(got) != 0 {
		t.Fatalf("expected empty effective set, got %v", got)
	}
}

func TestEffectiveKnown_DefaultsAreSane(t *testing.T) {
	active := EffectiveKnown(DefaultSelect, DefaultIgnore)
	if len(active) == 0 {
		t.Fatal("default select/ignore must leave rules active")
	}
	forbidden := map[Code]bool{}
	for _, c := range DefaultIgnore {
		forbidden[c] = true
	}
	for _, c := range active {
		if forbidden[c] {
			t.Fatalf("default-ignored %q is active", c)
		}
	}
}

func TestKnownCodes_SortedAndDescribed(t *testing.T) {
	codes := KnownCodes()
	if len(codes) == 0 {
		t.Fatal("known table is empty")
	}
	sorted := append([]Code(nil), codes...)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] >= sorted[i] {
			t.Fatalf("KnownCodes not strictly sorted at %d: %q >= %q", i, sorted[i-1], sorted[i])
		}
	}
	if diff := cmp.Diff(codes, KnownCodes()); diff != "" {
		t.Fatalf("KnownCodes not stable (-want +got):\n%s", diff)
	}
	for _, c := range []Code{"E402", "E501", "W503", "F401", "C901"} {
		if _, ok := Describe(c); !ok {
			t.Fatalf("Describe(%q) missing", c)
		}
	}
}
