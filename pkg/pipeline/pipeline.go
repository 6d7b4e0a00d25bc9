// Package pipeline chains the address processors into a query pipeline. The
// processors of every stage are selected by name from a registry, so their
// order is configuration.
package pipeline

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hazyhaar/adresse-fr/pkg/adresse"
)

// Query is a processed search query.
type Query struct {
	Raw         string          `json:"raw"`
	Cleaned     string          `json:"cleaned"`
	Tokens      []adresse.Token `json:"tokens"`
	Housenumber string          `json:"housenumber,omitempty"`
}

// Pipeline is safe for concurrent use once built.
type Pipeline struct {
	cfg    Config
	rules  *adresse.Rules
	logger *slog.Logger

	query       []QueryProcessor
	tokens      []TokenProcessor
	housenumber []TokenProcessor
	result      []ResultProcessor
}

// New builds a pipeline from cfg. Unknown processor names, or a processor
// listed in a stage it does not belong to, are errors.
func New(cfg Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rules := adresse.Default()
	if cfg.Tables != "" {
		t, err := adresse.LoadTables(cfg.Tables)
		if err != nil {
			return nil, err
		}
		if rules, err = adresse.Compile(t); err != nil {
			return nil, fmt.Errorf("compile tables %s: %w", cfg.Tables, err)
		}
	}

	env := &Env{Rules: rules}
	if cfg.FoldCacheSize > 0 {
		cache, err := lru.New[string, string](cfg.FoldCacheSize)
		if err != nil {
			return nil, fmt.Errorf("fold cache: %w", err)
		}
		env.FoldCache = cache
	}

	p := &Pipeline{cfg: cfg, rules: rules, logger: logger}
	for _, name := range cfg.Query {
		f, err := lookupStage(name, "query", func(f Factory) bool { return f.Query != nil })
		if err != nil {
			return nil, err
		}
		p.query = append(p.query, f.Query(env))
	}
	for _, name := range cfg.Tokens {
		f, err := lookupStage(name, "tokens", func(f Factory) bool { return f.Tokens != nil })
		if err != nil {
			return nil, err
		}
		p.tokens = append(p.tokens, f.Tokens(env))
	}
	for _, name := range cfg.Housenumber {
		f, err := lookupStage(name, "housenumber", func(f Factory) bool { return f.Tokens != nil })
		if err != nil {
			return nil, err
		}
		p.housenumber = append(p.housenumber, f.Tokens(env))
	}
	for _, name := range cfg.Result {
		f, err := lookupStage(name, "result", func(f Factory) bool { return f.Result != nil })
		if err != nil {
			return nil, err
		}
		p.result = append(p.result, f.Result(env))
	}

	logger.Debug("pipeline built",
		"tables", rules.Tables().Version,
		"query", cfg.Query, "tokens", cfg.Tokens,
		"housenumber", cfg.Housenumber, "result", cfg.Result,
		"fold_cache", cfg.FoldCacheSize)
	return p, nil
}

func lookupStage(name, stage string, fits func(Factory) bool) (Factory, error) {
	f, err := Lookup(name)
	if err != nil {
		return Factory{}, fmt.Errorf("%s stage: %w", stage, err)
	}
	if !fits(f) {
		return Factory{}, fmt.Errorf("%s stage: processor %q does not apply here", stage, name)
	}
	return f, nil
}

// Rules returns the compiled tables the pipeline runs on.
func (p *Pipeline) Rules() *adresse.Rules { return p.rules }

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() Config { return p.cfg }

// CleanQuery runs the query stage only.
func (p *Pipeline) CleanQuery(q string) string {
	for _, fn := range p.query {
		q = fn(q)
	}
	return q
}

// Query runs the query stage, tokenizes the result and runs the tokens
// stage. The first flagged token gives the house number.
func (p *Pipeline) Query(q string) *Query {
	out := &Query{Raw: q, Cleaned: p.CleanQuery(q)}
	out.Tokens = slices.Collect(runTokens(slices.Values(Tokenize(out.Cleaned)), p.tokens))
	for _, t := range out.Tokens {
		if t.Kind == adresse.KindHousenumber {
			out.Housenumber = t.Value
			break
		}
	}
	p.logger.Debug("query processed", "raw", q, "cleaned", out.Cleaned,
		"tokens", len(out.Tokens), "housenumber", out.Housenumber)
	return out
}

// Housenumber normalizes an indexed house number the way the query side
// sees it: "1 bis" becomes "1b".
func (p *Pipeline) Housenumber(s string) string {
	tokens := runTokens(slices.Values(Tokenize(s)), p.housenumber)
	return strings.Join(adresse.Values(slices.Collect(tokens)), " ")
}

// Result runs the result stage on res.
func (p *Pipeline) Result(res *adresse.Result) {
	for _, fn := range p.result {
		fn(res)
	}
}

func runTokens(seq iter.Seq[adresse.Token], procs []TokenProcessor) iter.Seq[adresse.Token] {
	for _, fn := range procs {
		seq = fn(seq)
	}
	return seq
}
