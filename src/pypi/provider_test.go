package pypi

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flakeconf/flakeconf/src/conffile"
	"github.com/flakeconf/flakeconf/src/ruleset"
)

func TestPackageFor(t *testing.T) {
	for _, tc := range []struct {
		code string
		pkg  string
		ok   bool
	}{
		{"E501", "pycodestyle", true},
		{"W605", "pycodestyle", true},
		{"F401", "pyflakes", true},
		{"C901", "mccabe", true},
		{"SIM105", "flake8-simplify", true},
		{"S101", "flake8-bandit", true},
		{"X999", "", false},
	} {
		pkg, ok := PackageFor(ruleset.Code(tc.code))
		if ok != tc.ok || pkg != tc.pkg {
			t.Errorf("PackageFor(%s) = %q, %v; want %q, %v", tc.code, pkg, ok, tc.pkg, tc.ok)
		}
	}
}

func TestProviders_Canonical(t *testing.T) {
	got := Providers(&conffile.Canonical().Policy)
	want := []Provider{
		{Package: "mccabe", Prefixes: []string{"C"}},
		{Package: "pycodestyle", Prefixes: []string{"E", "W"}},
		{Package: "pyflakes", Prefixes: []string{"F"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("providers mismatch (-want +got):\n%s", diff)
	}
}

func TestProviders_PluginCategories(t *testing.T) {
	f, err := conffile.Parse(".flake8", []byte("[flake8]\nselect = E, B, SIM\nignore = S101\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := Providers(&f.Policy)
	want := []Provider{
		{Package: "flake8-bandit", Prefixes: []string{"S"}},
		{Package: "flake8-bugbear", Prefixes: []string{"B"}},
		{Package: "flake8-simplify", Prefixes: []string{"SIM"}},
		{Package: "pycodestyle", Prefixes: []string{"E"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("providers mismatch (-want +got):\n%s", diff)
	}
}
