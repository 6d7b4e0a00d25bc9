package main

import (
	"flag"
	"io"
	"os"

	"github.com/hazyhaar/adresse-fr/pkg/batch"
)

func cmdBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	in := fs.String("in", "", "input CSV file (default stdin)")
	out := fs.String("out", "", "output CSV file (default stdout)")
	column := fs.String("column", "adresse", "header of the address column")
	delim := fs.String("delimiter", "", "field delimiter (default: sniffed from the header)")
	fs.Parse(args)

	cfg, logger := loadConfig(*cfgPath)
	p := buildPipeline(cfg, logger)

	var r io.Reader = os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			logger.Error("open input", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}
	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("create output", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	opts := batch.Options{Column: *column}
	if *delim != "" {
		opts.Comma = []rune(*delim)[0]
	}
	stats, err := batch.Process(r, w, p, opts, logger)
	if err != nil {
		logger.Error("batch failed", "error", err, "rows", stats.Rows)
		os.Exit(1)
	}
	logger.Info("batch done", "rows", stats.Rows, "skipped", stats.Skipped)
}
