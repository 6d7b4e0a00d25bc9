// Package batch normalizes the address column of a CSV file.
package batch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hazyhaar/adresse-fr/pkg/pipeline"
)

// Columns appended to every record.
var Columns = []string{"extracted", "cleaned", "housenumber"}

// Options configures a batch run.
type Options struct {
	Column string // header of the address column, case-insensitive
	Comma  rune   // field delimiter; 0 sniffs ';' or ',' from the header
}

// Stats counts the records of a run.
type Stats struct {
	Rows    int
	Skipped int
}

// Process reads a CSV with a header from r and writes it to w with the
// extracted, cleaned and housenumber columns appended. Records that cannot be
// parsed are skipped and counted.
func Process(r io.Reader, w io.Writer, p *pipeline.Pipeline, opts Options, logger *slog.Logger) (Stats, error) {
	var stats Stats
	if logger == nil {
		logger = slog.Default()
	}

	br := bufio.NewReader(r)
	comma := opts.Comma
	if comma == 0 {
		comma = sniffComma(br)
	}
	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), opts.Column) {
			col = i
			break
		}
	}
	if col < 0 {
		return stats, fmt.Errorf("column %q not found in header %v", opts.Column, header)
	}

	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(append(header, Columns...)); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Warn("skipping malformed record", "line", perr.Line, "error", perr.Err)
				stats.Skipped++
				continue
			}
			return stats, fmt.Errorf("read record: %w", err)
		}

		var input string
		if col < len(record) {
			input = record[col]
		}
		extracted := p.Rules().Extract(input)
		q := p.Query(input)
		if err := cw.Write(append(record, extracted, q.Cleaned, q.Housenumber)); err != nil {
			return stats, fmt.Errorf("write record: %w", err)
		}
		stats.Rows++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("flush: %w", err)
	}
	return stats, nil
}

// sniffComma picks ';' when the first line has more semicolons than commas.
func sniffComma(br *bufio.Reader) rune {
	line, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
