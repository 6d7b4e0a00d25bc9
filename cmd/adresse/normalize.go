package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"
)

// cmdNormalize prints one JSON object per query. Queries come from the
// arguments, or from stdin, one per line, when there are none.
func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	housenumber := fs.Bool("housenumber", false, "normalize indexed house numbers instead of queries")
	fs.Parse(args)

	cfg, logger := loadConfig(*cfgPath)
	p := buildPipeline(cfg, logger)
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	run := func(q string) {
		var out any
		if *housenumber {
			out = map[string]string{"input": q, "housenumber": p.Housenumber(q)}
		} else {
			out = p.Query(q)
		}
		if err := enc.Encode(out); err != nil {
			logger.Error("write output", "error", err)
			os.Exit(1)
		}
	}

	if fs.NArg() > 0 {
		for _, q := range fs.Args() {
			run(q)
		}
		return
	}
	if err := eachLine(os.Stdin, run); err != nil {
		logger.Error("read stdin", "error", err)
		os.Exit(1)
	}
}

func eachLine(r io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			fn(line)
		}
	}
	return sc.Err()
}
