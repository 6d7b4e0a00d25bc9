package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hazyhaar/adresse-fr/pkg/corpus"
)

func cmdCorpus(args []string) {
	if len(args) < 1 {
		corpusUsage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet("corpus "+args[0], flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	dbPath := fs.String("db", "", "corpus database (overrides config)")
	stage := fs.String("stage", "", "stage: "+strings.Join(corpus.Stages(), ", "))
	input := fs.String("input", "", "case input (add)")
	expected := fs.String("expected", "", "expected output (add)")
	note := fs.String("note", "", "free-form note (add)")
	fs.Parse(args[1:])

	cfg, logger := loadConfig(*cfgPath)
	if *dbPath != "" {
		cfg.CorpusDB = *dbPath
	}
	store, err := corpus.Open(cfg.CorpusDB)
	if err != nil {
		logger.Error("open corpus", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	switch args[0] {
	case "add":
		if *stage == "" || *input == "" {
			fmt.Fprintln(os.Stderr, "corpus add requires -stage and -input")
			os.Exit(1)
		}
		id, err := store.Add(corpus.Case{Stage: *stage, Input: *input, Expected: *expected, Note: *note})
		if err != nil {
			logger.Error("add case", "error", err)
			os.Exit(1)
		}
		fmt.Printf("case %d added\n", id)

	case "list":
		cases, err := store.List(*stage)
		if err != nil {
			logger.Error("list cases", "error", err)
			os.Exit(1)
		}
		for _, c := range cases {
			status := ""
			if c.LastOK != nil {
				status = "  [ok]"
				if !*c.LastOK {
					status = fmt.Sprintf("  [FAIL: %q]", *c.LastOutput)
				}
			}
			fmt.Printf("%5d  %-12s %q -> %q%s\n", c.ID, c.Stage, c.Input, c.Expected, status)
		}

	case "delete":
		for _, a := range fs.Args() {
			id, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				logger.Error("invalid case id", "id", a)
				os.Exit(1)
			}
			if err := store.Delete(id); err != nil {
				logger.Error("delete case", "error", err)
				os.Exit(1)
			}
		}

	case "run":
		p := buildPipeline(cfg, logger)
		report, err := store.Run(p, *stage)
		if err != nil {
			logger.Error("run corpus", "error", err)
			os.Exit(1)
		}
		for _, f := range report.Failures {
			fmt.Printf("FAIL %d %s %q\n  want %q\n  got  %q\n", f.Case.ID, f.Case.Stage, f.Case.Input, f.Case.Expected, f.Got)
		}
		fmt.Printf("%d cases, %d failed\n", report.Total, len(report.Failures))
		if !report.OK() {
			os.Exit(1)
		}

	default:
		corpusUsage()
		os.Exit(1)
	}
}

func corpusUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  adresse corpus add -stage <stage> -input <text> -expected <text> [-note <text>]
  adresse corpus list [-stage <stage>]
  adresse corpus delete <id>...
  adresse corpus run [-stage <stage>]
`)
}
