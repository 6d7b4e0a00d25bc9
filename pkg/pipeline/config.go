package pipeline

// Config selects the processors of every stage, in order.
type Config struct {
	Query         []string `yaml:"query" json:"query"`
	Tokens        []string `yaml:"tokens" json:"tokens"`
	Housenumber   []string `yaml:"housenumber" json:"housenumber"`
	Result        []string `yaml:"result" json:"result"`
	Tables        string   `yaml:"tables" json:"tables,omitempty"`
	FoldCacheSize int      `yaml:"fold_cache_size" json:"fold_cache_size"`
}

// DefaultConfig extracts before cleaning, and folds ordinals before flagging
// so that a glued "3bis" is flagged as "3b".
func DefaultConfig() Config {
	return Config{
		Query: []string{"extract_address", "clean_query"},
		Tokens: []string{
			"glue_ordinal", "glue_refs", "glue_initials", "glue_words",
			"fold_ordinal", "remove_leading_zeros", "flag_housenumber",
		},
		Housenumber:   []string{"glue_ordinal", "fold_ordinal"},
		Result:        []string{"make_labels"},
		FoldCacheSize: 4096,
	}
}
