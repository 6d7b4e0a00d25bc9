package adresse

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GlueWords emits, after a short leading fragment such as "mont" or "la",
// an extra token made of the fragment and the next word: "mont" "blanc"
// yields "mont" "montblanc" "blanc". The next word must be alphabetic and
// longer than two letters.
func (r *Rules) GlueWords(tokens iter.Seq[Token]) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for w := range neighbours(tokens) {
			if !yield(w.Cur) {
				return
			}
			if !r.glueWords[strings.ToLower(w.Cur.Value)] || !isWord(w.Next.Value) {
				continue
			}
			glued := Token{Raw: w.Cur.Raw + " " + w.Next.Raw, Value: w.Cur.Value + w.Next.Value}
			if !yield(glued) {
				return
			}
		}
	}
}

// GlueInitials collapses runs of more than two single letters into one
// token: "f" "f" "i" becomes "ffi". Shorter runs pass through.
func (r *Rules) GlueInitials(tokens iter.Seq[Token]) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var run []Token
		for w := range neighbours(tokens) {
			if !isInitial(w.Cur.Value) {
				if !yield(w.Cur) {
					return
				}
				continue
			}
			run = append(run, w.Cur)
			if isInitial(w.Next.Value) {
				continue
			}
			if !yieldRun(run, yield) {
				return
			}
			run = run[:0]
		}
	}
}

func yieldRun(run []Token, yield func(Token) bool) bool {
	if len(run) <= 2 {
		for _, t := range run {
			if !yield(t) {
				return false
			}
		}
		return true
	}
	raws := make([]string, len(run))
	var value strings.Builder
	for i, t := range run {
		raws[i] = t.Raw
		value.WriteString(t.Value)
	}
	return yield(run[0].Update(value.String(), strings.Join(raws, " ")))
}

// GlueRefs rewrites road references: "rn" "10" becomes "n10" and "rd906"
// becomes "d906". Prefixes and their canonical spelling come from the
// tables.
func (r *Rules) GlueRefs(tokens iter.Seq[Token]) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		skip := false
		for w := range neighbours(tokens) {
			if skip {
				skip = false
				continue
			}
			tok := w.Cur
			prefix, isPrefix := r.refPrefixes[strings.ToLower(tok.Value)]
			switch {
			case isPrefix && isDigits(w.Next.Value) && len(w.Next.Value) <= 4:
				tok = tok.Update(prefix+w.Next.Value, tok.Raw+" "+w.Next.Raw)
				skip = true
			case r.refToken != nil:
				if m := r.refToken.FindStringSubmatch(tok.Value); m != nil {
					tok = tok.Update(r.refPrefixes[strings.ToLower(m[1])]+m[2], "")
				}
			}
			if !yield(tok) {
				return
			}
		}
	}
}

func isInitial(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && size == len(s) && unicode.IsLetter(r)
}

func isWord(s string) bool {
	if utf8.RuneCountInString(s) <= 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// GlueWords applies the default rules.
func GlueWords(tokens iter.Seq[Token]) iter.Seq[Token] { return Default().GlueWords(tokens) }

// GlueInitials applies the default rules.
func GlueInitials(tokens iter.Seq[Token]) iter.Seq[Token] { return Default().GlueInitials(tokens) }

// GlueRefs applies the default rules.
func GlueRefs(tokens iter.Seq[Token]) iter.Seq[Token] { return Default().GlueRefs(tokens) }
