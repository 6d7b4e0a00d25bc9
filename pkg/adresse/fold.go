package adresse

import "strings"

// FoldCache memoizes folded values by input value.
// *lru.Cache[string, string] from hashicorp/golang-lru satisfies it.
type FoldCache interface {
	Get(key string) (string, bool)
	Add(key, value string) bool
}

// Fold shortens the ordinal of a glued house number: "60bis" becomes "60b",
// "3ter" becomes "3t". Anything else is returned as is ("4terre"), and
// folding a folded value is a no-op.
func (r *Rules) Fold(t Token) Token {
	return r.fold1(t, nil)
}

// Folder returns Fold backed by cache. A nil cache disables memoization.
// Concurrent callers may compute the same value twice; both writes are equal.
func (r *Rules) Folder(cache FoldCache) func(Token) Token {
	return func(t Token) Token { return r.fold1(t, cache) }
}

func (r *Rules) fold1(t Token, cache FoldCache) Token {
	v := t.Value
	if v == "" || v[0] < '0' || v[0] > '9' || isDigits(v) {
		return t
	}
	folded, ok := "", false
	if cache != nil {
		folded, ok = cache.Get(v)
	}
	if !ok {
		folded = r.foldValue(v)
		if cache != nil {
			cache.Add(v, folded)
		}
	}
	if folded == v {
		return t
	}
	return t.Update(folded, "")
}

func (r *Rules) foldValue(v string) string {
	m := r.fold.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	if letter, ok := r.foldMap[strings.ToLower(m[2])]; ok {
		return m[1] + letter
	}
	return v
}

// Fold applies the default rules.
func Fold(t Token) Token { return Default().Fold(t) }
