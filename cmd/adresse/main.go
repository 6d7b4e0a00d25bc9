package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/adresse-fr/pkg/pipeline"
)

const version = "0.1.0"

type stagesConfig struct {
	Query       []string `yaml:"query"`
	Tokens      []string `yaml:"tokens"`
	Housenumber []string `yaml:"housenumber"`
	Result      []string `yaml:"result"`
}

type config struct {
	Addr          string       `yaml:"addr"`
	LogLevel      string       `yaml:"log_level"`
	Tables        string       `yaml:"tables"`
	FoldCacheSize int          `yaml:"fold_cache_size"`
	RateLimit     int          `yaml:"rate_limit"`
	CorpusDB      string       `yaml:"corpus_db"`
	Pipeline      stagesConfig `yaml:"pipeline"`
}

func (c config) pipelineConfig() pipeline.Config {
	return pipeline.Config{
		Query:         c.Pipeline.Query,
		Tokens:        c.Pipeline.Tokens,
		Housenumber:   c.Pipeline.Housenumber,
		Result:        c.Pipeline.Result,
		Tables:        c.Tables,
		FoldCacheSize: c.FoldCacheSize,
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "normalize":
		cmdNormalize(os.Args[2:])
	case "batch":
		cmdBatch(os.Args[2:])
	case "corpus":
		cmdCorpus(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: adresse <command> [flags]

Commands:
  serve       Start the HTTP server
  mcp         Serve the MCP tools on stdin/stdout
  normalize   Run queries through the pipeline and print the result as JSON
  batch       Append normalized columns to a CSV file
  corpus      Manage and replay the regression corpus (add, list, delete, run)
`)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func defaultConfig() config {
	def := pipeline.DefaultConfig()
	return config{
		Addr:          ":8421",
		LogLevel:      "info",
		FoldCacheSize: def.FoldCacheSize,
		RateLimit:     600,
		CorpusDB:      "corpus.db",
		Pipeline: stagesConfig{
			Query:       def.Query,
			Tokens:      def.Tokens,
			Housenumber: def.Housenumber,
			Result:      def.Result,
		},
	}
}

// readConfig reads path over the defaults. A missing file is not an error.
func readConfig(path string) (cfg config, found bool, err error) {
	cfg = defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, true, nil
}

func loadConfig(path string) (config, *slog.Logger) {
	cfg, found, err := readConfig(path)
	logger := newLogger(cfg.LogLevel)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if !found {
		logger.Debug("no config file, using defaults", "path", path)
	}
	return cfg, logger
}

func buildPipeline(cfg config, logger *slog.Logger) *pipeline.Pipeline {
	p, err := pipeline.New(cfg.pipelineConfig(), logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}
	t := p.Rules().Tables()
	logger.Info("tables loaded", "version", t.Version,
		"street_types", len(t.StreetTypes), "noise_rules", len(t.NoiseRules))
	return p
}
