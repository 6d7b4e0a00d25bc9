package pipeline

import (
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/hazyhaar/adresse-fr/pkg/adresse"
)

// QueryProcessor rewrites a raw query string.
type QueryProcessor func(string) string

// TokenProcessor transforms a token stream.
type TokenProcessor func(iter.Seq[adresse.Token]) iter.Seq[adresse.Token]

// ResultProcessor completes a search result in place.
type ResultProcessor func(*adresse.Result)

// Env is what a processor may be built from.
type Env struct {
	Rules     *adresse.Rules
	FoldCache adresse.FoldCache
}

// Factory builds a named processor. Exactly one of its fields is set; token
// processors are usable both in the tokens and the housenumber stages.
type Factory struct {
	Query  func(*Env) QueryProcessor
	Tokens func(*Env) TokenProcessor
	Result func(*Env) ResultProcessor
}

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register adds a processor to the global registry, replacing any processor
// of the same name.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = f
}

// Lookup returns a registered processor by name, or an error if not found.
func Lookup(name string) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[name]
	if !ok {
		return Factory{}, fmt.Errorf("unknown processor: %q", name)
	}
	return f, nil
}

// Names returns the names of all registered processors, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map lifts a per-token function to a TokenProcessor.
func Map(fn func(adresse.Token) adresse.Token) TokenProcessor {
	return func(tokens iter.Seq[adresse.Token]) iter.Seq[adresse.Token] {
		return func(yield func(adresse.Token) bool) {
			for t := range tokens {
				if !yield(fn(t)) {
					return
				}
			}
		}
	}
}

func init() {
	Register("extract_address", Factory{Query: func(e *Env) QueryProcessor { return e.Rules.Extract }})
	Register("clean_query", Factory{Query: func(e *Env) QueryProcessor { return e.Rules.Clean }})

	Register("glue_ordinal", Factory{Tokens: func(e *Env) TokenProcessor { return e.Rules.GlueOrdinal }})
	Register("glue_words", Factory{Tokens: func(e *Env) TokenProcessor { return e.Rules.GlueWords }})
	Register("glue_initials", Factory{Tokens: func(e *Env) TokenProcessor { return e.Rules.GlueInitials }})
	Register("glue_refs", Factory{Tokens: func(e *Env) TokenProcessor { return e.Rules.GlueRefs }})
	Register("flag_housenumber", Factory{Tokens: func(e *Env) TokenProcessor { return e.Rules.FlagHousenumber }})
	Register("fold_ordinal", Factory{Tokens: func(e *Env) TokenProcessor { return Map(e.Rules.Folder(e.FoldCache)) }})
	Register("remove_leading_zeros", Factory{Tokens: func(e *Env) TokenProcessor { return Map(e.Rules.StripLeadingZeros) }})

	Register("make_labels", Factory{Result: func(*Env) ResultProcessor { return adresse.MakeLabels }})
}
