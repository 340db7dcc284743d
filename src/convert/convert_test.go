package convert

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/flakeconf/flakeconf/src/conffile"
)

func TestYAML_Canonical(t *testing.T) {
	got, err := YAML(&conffile.Canonical().Policy)
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	want := `ignore:
    - code: E1
      reason: indentation and continuation-line layout
    - code: E2
      reason: whitespace around punctuation and operators
    - code: E3
      reason: blank-line counting between definitions
    - code: E731
      reason: lambda assignments are fine for short callbacks
    - code: W503
      reason: line break before binary operator, contradicts W504
    - code: W504
      reason: line break after binary operator, either style may stay
select:
    - C
    - E
    - F
    - W
max-line-length: 120
max-complexity: 10
exclude:
    - .git
    - __pycache__
    - build
    - dist
    - '*.egg-info'
    - .tox
    - .venv
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_Canonical(t *testing.T) {
	data, err := JSON(&conffile.Canonical().Policy)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	want := Record{
		Ignore: []Entry{
			{Code: "E1", Reason: "indentation and continuation-line layout"},
			{Code: "E2", Reason: "whitespace around punctuation and operators"},
			{Code: "E3", Reason: "blank-line counting between definitions"},
			{Code: "E731", Reason: "lambda assignments are fine for short callbacks"},
			{Code: "W503", Reason: "line break before binary operator, contradicts W504"},
			{Code: "W504", Reason: "line break after binary operator, either style may stay"},
		},
		Select:        []string{"C", "E", "F", "W"},
		MaxLineLength: 120,
		MaxComplexity: 10,
		Exclude:       []string{".git", "__pycache__", "build", "dist", "*.egg-info", ".tox", ".venv"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRuff_Canonical(t *testing.T) {
	data, notes, err := Ruff(&conffile.Canonical().Policy)
	if err != nil {
		t.Fatalf("Ruff: %v", err)
	}

	wantNotes := []string{
		"ignore: W503 has no ruff equivalent, dropped",
		"ignore: W504 has no ruff equivalent, dropped",
	}
	if diff := cmp.Diff(wantNotes, notes); diff != "" {
		t.Fatalf("notes mismatch (-want +got):\n%s", diff)
	}

	var got ruffConfig
	if err := toml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid toml: %v", err)
	}
	want := ruffConfig{
		LineLength:    120,
		ExtendExclude: []string{".git", "__pycache__", "build", "dist", "*.egg-info", ".tox", ".venv"},
		Lint: ruffLint{
			Select: []string{"C90", "E", "F", "W"},
			Ignore: []string{"E1", "E2", "E3", "E731"},
			Mccabe: &ruffMccabe{MaxComplexity: 10},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ruff config mismatch (-want +got):\n%s", diff)
	}
}

func TestRuff_NoComplexity(t *testing.T) {
	f, err := conffile.Parse(".flake8", []byte("[flake8]\nignore = E501\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, notes, err := Ruff(&f.Policy)
	if err != nil {
		t.Fatalf("Ruff: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("unexpected notes: %v", notes)
	}
	var got ruffConfig
	if err := toml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Lint.Mccabe != nil {
		t.Fatalf("mccabe table emitted without max-complexity: %+v", got.Lint.Mccabe)
	}
	if got.LineLength != 79 {
		t.Fatalf("line-length = %d, want the default 79", got.LineLength)
	}
}

func TestRecordReasons_PreferMostSpecific(t *testing.T) {
	f, err := conffile.Parse(".flake8", []byte(`[flake8]
# E1    family-wide layout waiver
# E121  continuation indent follows the editor
ignore = E121, E126
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rec := newRecord(&f.Policy)
	want := []Entry{
		{Code: "E121", Reason: "continuation indent follows the editor"},
		{Code: "E126", Reason: "family-wide layout waiver"},
	}
	if diff := cmp.Diff(want, rec.Ignore); diff != "" {
		t.Fatalf("reasons mismatch (-want +got):\n%s", diff)
	}
}
