package adresse

import (
	"slices"
	"testing"
)

func TestGlueWords(t *testing.T) {
	tests := []struct {
		input, want []string
	}{
		{[]string{"mont", "blanc"}, []string{"mont", "montblanc", "blanc"}},
		{[]string{"la", "rochelle"}, []string{"la", "larochelle", "rochelle"}},
		{[]string{"l", "isle", "adam"}, []string{"l", "lisle", "isle", "adam"}},
		{[]string{"Val", "Thorens"}, []string{"Val", "ValThorens", "Thorens"}},
		{[]string{"la", "de"}, []string{"la", "de"}},
		{[]string{"le", "12eme"}, []string{"le", "12eme"}},
		{[]string{"champ"}, []string{"champ"}},
		{[]string{"rue", "blanche"}, []string{"rue", "blanche"}},
	}
	for _, tt := range tests {
		got := Values(slices.Collect(GlueWords(tokens(tt.input...))))
		if !slices.Equal(got, tt.want) {
			t.Errorf("GlueWords(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGlueWordsRaw(t *testing.T) {
	got := slices.Collect(GlueWords(tokens("mont", "blanc")))
	if got[1].Raw != "mont blanc" || got[1].IsFirst {
		t.Errorf("glued = %+v, want raw %q and not first", got[1], "mont blanc")
	}
}

func TestGlueInitials(t *testing.T) {
	tests := []struct {
		input, want []string
	}{
		{[]string{"f", "f", "i"}, []string{"ffi"}},
		{[]string{"avenue", "des", "F", "F", "I"}, []string{"avenue", "des", "FFI"}},
		{[]string{"place", "d", "e", "f", "paris"}, []string{"place", "def", "paris"}},
		{[]string{"a", "b", "c", "d"}, []string{"abcd"}},
		{[]string{"rue", "a", "b"}, []string{"rue", "a", "b"}},
		{[]string{"a", "b", "rue", "c", "d", "e"}, []string{"a", "b", "rue", "cde"}},
		{[]string{"é", "t", "é"}, []string{"été"}},
		{[]string{"1", "2", "3"}, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		got := Values(slices.Collect(GlueInitials(tokens(tt.input...))))
		if !slices.Equal(got, tt.want) {
			t.Errorf("GlueInitials(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGlueInitialsRaw(t *testing.T) {
	got := slices.Collect(GlueInitials(tokens("F", "F", "I")))
	if len(got) != 1 || got[0].Raw != "F F I" || !got[0].IsFirst {
		t.Errorf("GlueInitials = %+v, want one first token with raw %q", got, "F F I")
	}
}

func TestGlueRefs(t *testing.T) {
	tests := []struct {
		input, want []string
	}{
		{[]string{"rn", "10"}, []string{"n10"}},
		{[]string{"rn10"}, []string{"n10"}},
		{[]string{"RD906"}, []string{"d906"}},
		{[]string{"rd", "906", "grasse"}, []string{"d906", "grasse"}},
		{[]string{"route", "n", "7"}, []string{"route", "n7"}},
		{[]string{"a", "86"}, []string{"a86"}},
		{[]string{"rm", "12"}, []string{"rm12"}},
		{[]string{"d906"}, []string{"d906"}},
		{[]string{"n", "12345"}, []string{"n", "12345"}},
		{[]string{"rn", "bis"}, []string{"rn", "bis"}},
		{[]string{"rue", "10"}, []string{"rue", "10"}},
	}
	for _, tt := range tests {
		got := Values(slices.Collect(GlueRefs(tokens(tt.input...))))
		if !slices.Equal(got, tt.want) {
			t.Errorf("GlueRefs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGlueRefsRaw(t *testing.T) {
	got := slices.Collect(GlueRefs(tokens("rn", "10")))
	if got[0].Raw != "rn 10" {
		t.Errorf("raw = %q, want %q", got[0].Raw, "rn 10")
	}
}
