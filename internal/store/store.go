// Package store persists enrichment run history to SQLite. Each saved run is
// one row: identifying metadata in queryable columns, the full report
// envelope as a JSON blob. History is append-only; re-running a company adds
// a new run rather than overwriting the old one.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mwheeler/buyergroup-intel/internal/buyergroup"
)

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// RunStore is a SQLite-backed archive of enrichment runs.
type RunStore struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	company_id      TEXT NOT NULL,
	company_name    TEXT NOT NULL DEFAULT '',
	generated_at    TEXT NOT NULL,
	people_in       INTEGER NOT NULL DEFAULT 0,
	people_enriched INTEGER NOT NULL DEFAULT 0,
	groups_built    INTEGER NOT NULL DEFAULT 0,
	low_confidence  INTEGER NOT NULL DEFAULT 0,
	rules_version   TEXT NOT NULL DEFAULT '',
	report          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_company ON runs (company_id, generated_at);
`

// Open opens (creating if needed) the run archive at dbPath.
func Open(dbPath string) (*RunStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &RunStore{db: db}, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

// RunSummary is one archived run's row metadata, without the report blob.
type RunSummary struct {
	RunID              string    `db:"run_id" json:"run_id"`
	CompanyID          string    `db:"company_id" json:"company_id"`
	CompanyName        string    `db:"company_name" json:"company_name"`
	GeneratedAt        time.Time `db:"-" json:"generated_at"`
	PeopleIn           int       `db:"people_in" json:"people_in"`
	PeopleEnriched     int       `db:"people_enriched" json:"people_enriched"`
	GroupsBuilt        int       `db:"groups_built" json:"groups_built"`
	LowConfidenceCount int       `db:"low_confidence" json:"low_confidence_count"`
	RulesVersion       string    `db:"rules_version" json:"rules_version"`
}

// SaveRun archives a report envelope and returns the new run id.
func (s *RunStore) SaveRun(env buyergroup.ReportEnvelope) (string, error) {
	blob, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	runID := uuid.New().String()
	_, err = s.db.Exec(`INSERT INTO runs (run_id, company_id, company_name, generated_at,
		people_in, people_enriched, groups_built, low_confidence, rules_version, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		env.Company.CompanyID,
		env.Company.CompanyName,
		env.GeneratedAt.UTC().Format(time.RFC3339Nano),
		env.RunMetadata.PeopleIn,
		env.RunMetadata.PeopleEnriched,
		env.RunMetadata.GroupsBuilt,
		env.RunMetadata.LowConfidenceCount,
		env.RunMetadata.RulesVersion,
		string(blob),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// GetRun loads one archived report envelope by run id.
func (s *RunStore) GetRun(runID string) (buyergroup.ReportEnvelope, error) {
	var blob string
	err := s.db.Get(&blob, `SELECT report FROM runs WHERE run_id = ?`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return buyergroup.ReportEnvelope{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return buyergroup.ReportEnvelope{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	var env buyergroup.ReportEnvelope
	if err := json.Unmarshal([]byte(blob), &env); err != nil {
		return buyergroup.ReportEnvelope{}, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return env, nil
}

// ListRuns returns run summaries, newest first. An empty companyID lists
// every company.
func (s *RunStore) ListRuns(companyID string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT run_id, company_id, company_name, generated_at, people_in,
		people_enriched, groups_built, low_confidence, rules_version
		FROM runs`
	args := []any{}
	if companyID != "" {
		query += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	query += ` ORDER BY generated_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var generated string
		if err := rows.Scan(&r.RunID, &r.CompanyID, &r.CompanyName, &generated,
			&r.PeopleIn, &r.PeopleEnriched, &r.GroupsBuilt, &r.LowConfidenceCount, &r.RulesVersion); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, generated); err == nil {
			r.GeneratedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
