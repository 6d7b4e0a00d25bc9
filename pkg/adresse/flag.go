package adresse

import "iter"

// FlagHousenumber marks the house number of a token stream: a 1 to 4 digit
// number, optionally followed by one letter, that either opens the stream or
// precedes a street type. Only the first candidate is flagged, so a second
// address further in the query ("8 rue du 8 mai") does not add noise.
func (r *Rules) FlagHousenumber(tokens iter.Seq[Token]) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		found := false
		for w := range neighbours(tokens) {
			tok := w.Cur
			if !found && number.MatchString(tok.Value) &&
				(tok.IsFirst || (!w.Next.IsZero() && r.streetType.MatchString(w.Next.Value))) {
				tok = tok.WithKind(KindHousenumber)
				found = true
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// FlagHousenumber applies the default rules.
func FlagHousenumber(tokens iter.Seq[Token]) iter.Seq[Token] {
	return Default().FlagHousenumber(tokens)
}
