package conffile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flakeconf/flakeconf/src/ruleset"
)

func TestNormalize_SortsAndDedupes(t *testing.T) {
	f := parseString(t, `[flake8]
ignore = W605, E501, E501, E1
select = F, E, F
max-line-length = 120
exclude = dist, build, dist
`)
	n := f.Normalize()

	if diff := cmp.Diff([]ruleset.Code{"E1", "E501", "W605"}, n.Policy.Ignore); diff != "" {
		t.Fatalf("ignore (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ruleset.Code{"E", "F"}, n.Policy.Select); diff != "" {
		t.Fatalf("select (-want +got):\n%s", diff)
	}
	// pattern order is meaningful, only duplicates go
	if diff := cmp.Diff([]string{"dist", "build"}, n.Policy.Exclude); diff != "" {
		t.Fatalf("exclude (-want +got):\n%s", diff)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	f := parseString(t, `[flake8]
ignore = W605, E501, E1
select = F, E
max-line-length = 99
exclude = build
`)
	once := f.Normalize()
	twice := once.Normalize()
	if diff := cmp.Diff(once.Policy, twice.Policy); diff != "" {
		t.Fatalf("normalize not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalize_CanonicalTemplateIsFixed(t *testing.T) {
	f := Canonical()
	if diff := cmp.Diff(f.Policy, f.Normalize().Policy); diff != "" {
		t.Fatalf("shipped template is not in normal form (-want +got):\n%s", diff)
	}
}

func TestNormalize_DoesNotMutateSource(t *testing.T) {
	f := parseString(t, "[flake8]\nignore = W605, E501\nselect = E\n")
	before := append([]ruleset.Code(nil), f.Policy.Ignore...)
	_ = f.Normalize()
	if diff := cmp.Diff(before, f.Policy.Ignore); diff != "" {
		t.Fatalf("source policy mutated (-want +got):\n%s", diff)
	}
}
