package adresse

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	tb := DefaultTables()
	if len(tb.StreetTypes) == 0 || len(tb.NoiseRules) == 0 {
		t.Fatalf("default tables look empty: %d street types, %d noise rules", len(tb.StreetTypes), len(tb.NoiseRules))
	}
	if tb.OrdinalFold["bis"] != "b" || tb.OrdinalFold["quinquies"] != "c" {
		t.Errorf("ordinal fold = %v", tb.OrdinalFold)
	}
	if tb.RefPrefixes["rn"] != "n" || tb.RefPrefixes["rd"] != "d" {
		t.Errorf("ref prefixes = %v", tb.RefPrefixes)
	}
	if Default().Tables().Version != tb.Version {
		t.Errorf("Default() compiled version %q, want %q", Default().Tables().Version, tb.Version)
	}
}

func TestIsStreetType(t *testing.T) {
	for _, s := range []string{"rue", "r", "Avenue", "av", "bd", "boulevard", "allées", "chaussée", "rond-point", "Lotissement", "cité", "Cité", "pré", "pre"} {
		if !Default().IsStreetType(s) {
			t.Errorf("IsStreetType(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"de", "renard", "grand", "terreaux", "citéa", "préfecture", ""} {
		if Default().IsStreetType(s) {
			t.Errorf("IsStreetType(%q) = true, want false", s)
		}
	}
}

func TestIsOrdinal(t *testing.T) {
	for _, s := range []string{"bis", "TER", "quater", "b", "r"} {
		if !Default().IsOrdinal(s) {
			t.Errorf("IsOrdinal(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"avenue", "terreaux", "12", ""} {
		if Default().IsOrdinal(s) {
			t.Errorf("IsOrdinal(%q) = true, want false", s)
		}
	}
}

func TestParseTablesErrors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"invalid yaml", "street_types: [", "parse tables"},
		{"no street types", "ordinal_suffixes: [bis]", "no street types"},
		{"no ordinals", "street_types: [rue]", "no ordinal suffixes"},
	}
	for _, tt := range tests {
		_, err := ParseTables([]byte(tt.doc))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want containing %q", tt.name, err, tt.want)
		}
	}
}

func TestCompileBadNoiseRule(t *testing.T) {
	tb := DefaultTables()
	tb.NoiseRules = append(tb.NoiseRules, NoiseRule{Name: "broken", Pattern: "(unclosed"})
	_, err := Compile(tb)
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("Compile err = %v, want error naming the rule", err)
	}
}

func TestLoadTablesSwapsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	os.WriteFile(path, []byte(`version: test
street_types: ['chemin', 'sentier']
ordinal_suffixes: ['bis', 'ter']
ordinal_fold: {bis: b}
noise_rules:
  - name: mairie
    pattern: '^mairie +'
    replacement: ''
`), 0o644)

	tb, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	r, err := Compile(tb)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if got := r.Clean("Mairie 3 chemin vert"); got != "3 chemin vert" {
		t.Errorf("Clean = %q, want %q", got, "3 chemin vert")
	}
	if got := r.Extract("Ecole 3 chemin vert"); got != "3 chemin vert" {
		t.Errorf("Extract = %q", got)
	}
	// "rue" is not a street type anymore.
	if got := r.Extract("Ecole 3 rue verte"); got != "Ecole 3 rue verte" {
		t.Errorf("Extract = %q, want unchanged", got)
	}
	if got := r.Fold(NewToken("3ter")).Value; got != "3ter" {
		t.Errorf("Fold(3ter) = %q, want unchanged without a fold entry", got)
	}
	got := Values(slices.Collect(r.GlueRefs(tokens("rn", "10"))))
	if !slices.Equal(got, []string{"rn", "10"}) {
		t.Errorf("GlueRefs without prefixes = %q", got)
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadTables on missing file: want error")
	}
}
