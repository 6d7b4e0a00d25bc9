package adresse

import (
	"slices"
	"testing"
)

func TestFlagHousenumber(t *testing.T) {
	tests := []struct {
		input []string
		want  bool
	}{
		{[]string{"6b"}, true},
		{[]string{"6"}, true},
		{[]string{"6", "avenue"}, true},
		{[]string{"60b", "avenue"}, true},
		{[]string{"600t", "avenue"}, true},
		{[]string{"6c", "avenue"}, true},
		{[]string{"60s", "avenue"}, true},
		{[]string{"600q", "avenue"}, true},
		{[]string{"6s", "avenue"}, true},
		{[]string{"600b", "avenue"}, true},
		{[]string{"241", "r", "de"}, true},
		{[]string{"241r", "rue"}, true},
		{[]string{"place", "des", "terreaux"}, false},
		{[]string{"rue", "du", "bis"}, false},
		{[]string{"9", "grand", "rue"}, true},
		{[]string{"75010", "paris"}, false},
		{[]string{"3bis", "rue"}, false},
		{[]string{"", "rue"}, false},
	}
	for _, tt := range tests {
		got := slices.Collect(FlagHousenumber(tokens(tt.input...)))
		if !slices.Equal(Values(got), tt.input) {
			t.Errorf("FlagHousenumber(%q) changed values: %q", tt.input, Values(got))
			continue
		}
		if flagged := got[0].Kind == KindHousenumber; flagged != tt.want {
			t.Errorf("FlagHousenumber(%q) flagged first = %v, want %v", tt.input, flagged, tt.want)
		}
	}
}

func TestFlagHousenumberNotFirst(t *testing.T) {
	in := []Token{NewToken("ecole"), NewToken("12"), NewToken("rue"), NewToken("du"), NewToken("port")}
	got := slices.Collect(FlagHousenumber(slices.Values(in)))
	if got[1].Kind != KindHousenumber {
		t.Errorf("12 before rue not flagged: %+v", got)
	}
}

func TestFlagHousenumberAccentedStreetType(t *testing.T) {
	for _, next := range []string{"cité", "Cité", "pré"} {
		got := slices.Collect(FlagHousenumber(tokens("ecole", "12", next, "x")))
		if got[1].Kind != KindHousenumber {
			t.Errorf("12 before %q not flagged: %+v", next, got)
		}
	}
}

func TestFlagHousenumberOnlyFirstMatch(t *testing.T) {
	inputs := [][]string{
		{"8", "rue", "du", "8", "mai", "troyes"},
		{"3", "rue", "du", "8", "rue", "y"},
		{"rue", "du", "8", "mai", "12", "avenue", "foch"},
		{"1", "2", "3", "4"},
	}
	for _, in := range inputs {
		n := 0
		for tok := range FlagHousenumber(tokens(in...)) {
			if tok.Kind == KindHousenumber {
				n++
			}
		}
		if n > 1 {
			t.Errorf("FlagHousenumber(%q) flagged %d tokens, want at most 1", in, n)
		}
	}
}

func TestFlagHousenumberSkipsPostcodes(t *testing.T) {
	in := []Token{NewToken("paris"), NewToken("75010"), NewToken("rue")}
	for tok := range FlagHousenumber(slices.Values(in)) {
		if tok.Kind == KindHousenumber {
			t.Errorf("flagged %q", tok.Value)
		}
	}
}
