package adresse

import "strings"

// StripLeadingZeros drops the leading zeros of short numbers: "0003" becomes
// "3", "03 bis" becomes "3 bis". Digit groups longer than 4, postcodes
// included, are left alone.
func (r *Rules) StripLeadingZeros(t Token) Token {
	v := leadingZeros.ReplaceAllStringFunc(t.Value, stripZeros)
	if v == t.Value {
		return t
	}
	return t.Update(v, "")
}

// StripLeadingZeros applies the default rules.
func StripLeadingZeros(t Token) Token { return Default().StripLeadingZeros(t) }

func stripZeros(group string) string {
	if len(group) > 4 {
		return group
	}
	if s := strings.TrimLeft(group, "0"); s != "" {
		return s
	}
	return "0"
}
