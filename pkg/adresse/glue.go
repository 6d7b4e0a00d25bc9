package adresse

import "iter"

// GlueOrdinal merges a number with the ordinal suffix that follows it:
// "60" "bis" "avenue" becomes "60bis" "avenue", the merged raw being
// "60 bis". The suffix must be the last token or be followed by a street
// type; otherwise both tokens pass through ("rue du bis").
func (r *Rules) GlueOrdinal(tokens iter.Seq[Token]) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var pending Token
		held := false
		for w := range neighbours(tokens) {
			tok := w.Cur
			if !w.Next.IsZero() && isDigits(tok.Value) {
				if held && !yield(pending) {
					return
				}
				pending, held = tok, true
				continue
			}
			if held {
				held = false
				if r.ordinal.MatchString(tok.Value) && (w.Next.IsZero() || r.streetType.MatchString(w.Next.Value)) {
					// No space in the value, to maximize the chances of a hit.
					tok = pending.Update(pending.Value+tok.Value, pending.Raw+" "+tok.Raw)
				} else if !yield(pending) {
					return
				}
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// GlueOrdinal applies the default rules.
func GlueOrdinal(tokens iter.Seq[Token]) iter.Seq[Token] { return Default().GlueOrdinal(tokens) }
