package pipeline

import (
	"strings"
	"unicode"

	"github.com/hazyhaar/adresse-fr/pkg/adresse"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeValue lowercases and strips accents (Élodie -> elodie). Ligatures
// left over by accent stripping are transliterated (cœur -> coeur).
func NormalizeValue(s string) string {
	result, _, _ := transform.String(stripAccents, strings.ToLower(s))
	if !isASCII(result) {
		result = strings.ToLower(unidecode.Unidecode(result))
	}
	return result
}

// Tokenize splits q on every rune that is neither a letter nor a digit. Raw
// keeps the surface form, Value is normalized with NormalizeValue.
func Tokenize(q string) []adresse.Token {
	fields := strings.FieldsFunc(norm.NFC.String(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]adresse.Token, len(fields))
	for i, f := range fields {
		tokens[i] = adresse.Token{Raw: f, Value: NormalizeValue(f), IsFirst: i == 0}
	}
	return tokens
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
