package adresse

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind uint8

const (
	KindUnclassified Kind = iota
	KindHousenumber
)

func (k Kind) String() string {
	switch k {
	case KindHousenumber:
		return "housenumber"
	default:
		return "unclassified"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "housenumber":
		*k = KindHousenumber
	case "", "unclassified":
		*k = KindUnclassified
	default:
		return fmt.Errorf("unknown token kind %q", b)
	}
	return nil
}

// Token is one unit of a tokenized query. Tokens are values: every
// transform returns a derived token and leaves its input alone.
type Token struct {
	Raw     string `json:"raw"`
	Value   string `json:"value"`
	Kind    Kind   `json:"kind"`
	IsFirst bool   `json:"is_first,omitempty"`
}

// NewToken returns an unclassified token whose raw and value are s.
func NewToken(s string) Token {
	return Token{Raw: s, Value: s}
}

// NewTokens builds a token stream from values, marking the first one.
func NewTokens(values ...string) []Token {
	tokens := make([]Token, len(values))
	for i, v := range values {
		tokens[i] = NewToken(v)
	}
	if len(tokens) > 0 {
		tokens[0].IsFirst = true
	}
	return tokens
}

// Update returns a copy of t carrying value. An empty raw keeps t's raw.
func (t Token) Update(value, raw string) Token {
	t.Value = value
	if raw != "" {
		t.Raw = raw
	}
	return t
}

// WithKind returns a copy of t classified as k.
func (t Token) WithKind(k Kind) Token {
	t.Kind = k
	return t
}

// IsZero reports whether t is the empty boundary token.
func (t Token) IsZero() bool {
	return t.Value == ""
}

func (t Token) String() string {
	return t.Value
}

// Values returns the value of every token.
func Values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
