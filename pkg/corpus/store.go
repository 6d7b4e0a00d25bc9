// Package corpus keeps a regression corpus of address transforms in SQLite:
// cases of (stage, input, expected output) replayed against a pipeline.
package corpus

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/adresse-fr/pkg/adresse"
	"github.com/hazyhaar/adresse-fr/pkg/pipeline"
)

// Stages a case can exercise.
const (
	StageClean       = "clean"       // Rules.Clean
	StageExtract     = "extract"     // Rules.Extract
	StageQuery       = "query"       // Pipeline.CleanQuery
	StageTokens      = "tokens"      // token values of Pipeline.Query, space separated
	StageFlag        = "flag"        // house number found by Pipeline.Query
	StageHousenumber = "housenumber" // Pipeline.Housenumber
)

var stages = []string{StageClean, StageExtract, StageQuery, StageTokens, StageFlag, StageHousenumber}

// Stages returns the known stage names.
func Stages() []string { return append([]string(nil), stages...) }

// Case is a row of the corpus_cases table.
type Case struct {
	ID         int64
	Stage      string
	Input      string
	Expected   string
	Note       string
	LastRun    *int64
	LastOK     *bool
	LastOutput *string
	UpdatedAt  int64
}

// Store manages the corpus_cases SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// corpus_cases table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS corpus_cases (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		stage        TEXT NOT NULL,
		input        TEXT NOT NULL,
		expected     TEXT NOT NULL,
		note         TEXT NOT NULL DEFAULT '',
		last_run     INTEGER,
		last_ok      INTEGER,
		last_output  TEXT,
		updated_at   INTEGER NOT NULL,
		UNIQUE (stage, input)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create corpus_cases table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the SQLite connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a case. A case with the same stage and input is replaced and
// its last run forgotten.
func (s *Store) Add(c Case) (int64, error) {
	if !validStage(c.Stage) {
		return 0, fmt.Errorf("unknown stage %q (want one of %s)", c.Stage, strings.Join(stages, ", "))
	}
	const q = `INSERT INTO corpus_cases (stage, input, expected, note, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (stage, input) DO UPDATE SET
			expected = excluded.expected,
			note = excluded.note,
			last_run = NULL, last_ok = NULL, last_output = NULL,
			updated_at = excluded.updated_at
		RETURNING id`
	var id int64
	err := s.db.QueryRow(q, c.Stage, c.Input, c.Expected, c.Note, time.Now().Unix()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add %s case %q: %w", c.Stage, c.Input, err)
	}
	return id, nil
}

// Delete removes a case by id.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM corpus_cases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete case %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("case %d not found", id)
	}
	return nil
}

// List returns the cases of stage, or all cases when stage is empty, ordered
// by stage then id.
func (s *Store) List(stage string) ([]Case, error) {
	rows, err := s.db.Query(`SELECT id, stage, input, expected, note,
		last_run, last_ok, last_output, updated_at
		FROM corpus_cases WHERE ? = '' OR stage = ? ORDER BY stage, id`, stage, stage)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var cases []Case
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.ID, &c.Stage, &c.Input, &c.Expected, &c.Note,
			&c.LastRun, &c.LastOK, &c.LastOutput, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// Failure is a case whose output differs from its expectation.
type Failure struct {
	Case Case
	Got  string
}

// Report summarizes a corpus run.
type Report struct {
	Total    int
	Failures []Failure
}

// OK reports whether every case passed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Run replays every case of stage (all stages when empty) through p and
// records the outcome of each case.
func (s *Store) Run(p *pipeline.Pipeline, stage string) (*Report, error) {
	cases, err := s.List(stage)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.Prepare(`UPDATE corpus_cases SET last_run = ?, last_ok = ?, last_output = ? WHERE id = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare run: %w", err)
	}
	defer stmt.Close()

	report := &Report{Total: len(cases)}
	now := time.Now().Unix()
	for _, c := range cases {
		got, err := Evaluate(p, c.Stage, c.Input)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", c.ID, err)
		}
		ok := got == c.Expected
		if !ok {
			report.Failures = append(report.Failures, Failure{Case: c, Got: got})
		}
		if _, err := stmt.Exec(now, ok, got, c.ID); err != nil {
			return nil, fmt.Errorf("record case %d: %w", c.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}
	return report, nil
}

// Evaluate computes the output of stage for input.
func Evaluate(p *pipeline.Pipeline, stage, input string) (string, error) {
	switch stage {
	case StageClean:
		return p.Rules().Clean(input), nil
	case StageExtract:
		return p.Rules().Extract(input), nil
	case StageQuery:
		return p.CleanQuery(input), nil
	case StageTokens:
		return strings.Join(adresse.Values(p.Query(input).Tokens), " "), nil
	case StageFlag:
		return p.Query(input).Housenumber, nil
	case StageHousenumber:
		return p.Housenumber(input), nil
	default:
		return "", fmt.Errorf("unknown stage %q", stage)
	}
}

func validStage(stage string) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}
