// Package adresse normalizes French address text for a geocoder: query
// cleaning, address extraction, house-number glue, flagging and folding, and
// result labels.
//
// Every transform is a pure function over its input. The linguistic data
// (street types, ordinal suffixes, noise rules) lives in Tables and is
// compiled once into Rules; swapping the tables never touches the algorithms.
package adresse

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml
var defaultTablesYAML []byte

// Tables is the domain data consumed by the transforms.
type Tables struct {
	Version         string            `yaml:"version" json:"version"`
	StreetTypes     []string          `yaml:"street_types" json:"street_types"`
	OrdinalSuffixes []string          `yaml:"ordinal_suffixes" json:"ordinal_suffixes"`
	OrdinalFold     map[string]string `yaml:"ordinal_fold" json:"ordinal_fold"`
	NoiseRules      []NoiseRule       `yaml:"noise_rules" json:"noise_rules"`
	GlueWords       []string          `yaml:"glue_words" json:"glue_words"`
	RefPrefixes     map[string]string `yaml:"ref_prefixes" json:"ref_prefixes"`
}

// NoiseRule is one substitution of the query cleaner. Replacement uses
// regexp.Expand syntax (${1}).
type NoiseRule struct {
	Name        string `yaml:"name" json:"name"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" json:"replacement"`
	// Repeat reapplies the rule until the text stops changing, for patterns
	// whose matches would share a separator.
	Repeat bool `yaml:"repeat,omitempty" json:"repeat,omitempty"`
}

// ParseTables decodes a tables YAML document.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if len(t.StreetTypes) == 0 {
		return nil, fmt.Errorf("parse tables: no street types")
	}
	if len(t.OrdinalSuffixes) == 0 {
		return nil, fmt.Errorf("parse tables: no ordinal suffixes")
	}
	return &t, nil
}

// LoadTables reads and parses a tables YAML file.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %s: %w", path, err)
	}
	t, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// DefaultTables returns a fresh copy of the embedded French tables.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

type noiseRule struct {
	name   string
	re     *regexp.Regexp
	repl   string
	repeat bool
}

const maxRepeat = 8

func (n noiseRule) apply(q string) string {
	out := n.re.ReplaceAllString(q, n.repl)
	for i := 1; n.repeat && out != q && i < maxRepeat; i++ {
		q, out = out, n.re.ReplaceAllString(out, n.repl)
	}
	return out
}

// Rules is a compiled, read-only set of Tables. It is safe for concurrent use.
type Rules struct {
	tables *Tables

	noise      []noiseRule
	extract    *regexp.Regexp
	ordinal    *regexp.Regexp
	streetType *regexp.Regexp
	fold       *regexp.Regexp
	refToken   *regexp.Regexp

	foldMap     map[string]string
	glueWords   map[string]bool
	refPrefixes map[string]string
}

// wordEnd ends a keyword at end of text or before a non-word rune.
const wordEnd = `(?:$|[^\p{L}\p{N}_])`

var (
	spaces       = regexp.MustCompile(`\s{2,}`)
	number       = regexp.MustCompile(`(?i)^\d{1,4}[a-z]?\b`)
	leadingZeros = regexp.MustCompile(`\b0+(\d{1,3})\b`)
)

// Compile builds the regular expressions of t.
func Compile(t *Tables) (*Rules, error) {
	types := strings.Join(t.StreetTypes, "|")
	ordinals := strings.Join(t.OrdinalSuffixes, "|")

	r := &Rules{
		tables:      t,
		foldMap:     make(map[string]string, len(t.OrdinalFold)),
		glueWords:   make(map[string]bool, len(t.GlueWords)),
		refPrefixes: make(map[string]string, len(t.RefPrefixes)),
	}

	var err error
	compile := func(name, expr string) *regexp.Regexp {
		if err != nil {
			return nil
		}
		re, cerr := regexp.Compile(expr)
		if cerr != nil {
			err = fmt.Errorf("compile %s: %w", name, cerr)
		}
		return re
	}

	// "22 rue des Fleurs 59350 Lille" out of "XYZ Ets bâtiment B 22 rue des Fleurs 59350 Lille".
	r.extract = compile("extract", `(?i)\b\d{1,4}(?: *(?:`+ordinals+`))?,? +(?:`+types+`) .*`)
	// \b is ASCII-only in RE2 and never matches after "cité" or "pré".
	r.ordinal = compile("ordinal", `(?i)^(?:`+ordinals+`)`+wordEnd)
	r.streetType = compile("street type", `(?i)^(?:`+types+`)`+wordEnd)
	r.fold = compile("fold", `(?i)^(\d{1,4})(`+ordinals+`)$`)

	prefixes := make([]string, 0, len(t.RefPrefixes))
	for p, norm := range t.RefPrefixes {
		p = strings.ToLower(p)
		r.refPrefixes[p] = strings.ToLower(norm)
		prefixes = append(prefixes, regexp.QuoteMeta(p))
	}
	if len(prefixes) > 0 {
		// Longest first so "rn10" is read as rn+10.
		sort.Slice(prefixes, func(i, j int) bool {
			if len(prefixes[i]) != len(prefixes[j]) {
				return len(prefixes[i]) > len(prefixes[j])
			}
			return prefixes[i] < prefixes[j]
		})
		r.refToken = compile("ref", `(?i)^(`+strings.Join(prefixes, "|")+`)(\d{1,4})$`)
	}

	for _, nr := range t.NoiseRules {
		re := compile("noise rule "+nr.Name, `(?i)`+nr.Pattern)
		r.noise = append(r.noise, noiseRule{name: nr.Name, re: re, repl: nr.Replacement, repeat: nr.Repeat})
	}
	if err != nil {
		return nil, err
	}

	for word, letter := range t.OrdinalFold {
		r.foldMap[strings.ToLower(word)] = letter
	}
	for _, w := range t.GlueWords {
		r.glueWords[strings.ToLower(w)] = true
	}
	return r, nil
}

// Tables returns the tables r was compiled from.
func (r *Rules) Tables() *Tables {
	return r.tables
}

var defaultRules = sync.OnceValue(func() *Rules {
	r, err := Compile(DefaultTables())
	if err != nil {
		panic(fmt.Sprintf("adresse: default tables: %v", err))
	}
	return r
})

// Default returns the rules compiled from the embedded tables.
func Default() *Rules {
	return defaultRules()
}

// IsStreetType reports whether s starts with a street-type keyword.
func (r *Rules) IsStreetType(s string) bool {
	return r.streetType.MatchString(s)
}

// IsOrdinal reports whether s starts with an ordinal suffix.
func (r *Rules) IsOrdinal(s string) bool {
	return r.ordinal.MatchString(s)
}
