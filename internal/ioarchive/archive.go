// Package ioarchive keeps a local history of pipeline runs in a small
// sqlite database. One row per run, enough for the history command to
// show what was generated when and how accurate it was.
package ioarchive

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sdmtools/sdmins/pkg/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  run_id            TEXT PRIMARY KEY,
  generated_at      TIMESTAMP NOT NULL,
  month             TEXT NOT NULL,
  year              INTEGER NOT NULL,
  complete_campuses INTEGER NOT NULL,
  total_campuses    INTEGER NOT NULL,
  total_insights    INTEGER NOT NULL,
  accurate_campuses INTEGER NOT NULL,
  total_issues      INTEGER NOT NULL,
  accuracy_rate     REAL NOT NULL,
  incomplete_run    INTEGER NOT NULL DEFAULT 0
);
`

// RunSummary is one archived pipeline run.
type RunSummary struct {
	RunID            string
	GeneratedAt      time.Time
	Month            string
	Year             int
	CompleteCampuses int
	TotalCampuses    int
	TotalInsights    int
	AccurateCampuses int
	TotalIssues      int
	AccuracyRate     float64
	IncompleteRun    bool
}

// Archive is the run-history store.
type Archive struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the run-history database at path.
func New(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, OpenError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	return &Archive{db: db, path: path}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// RecordRun stores the summary of a finished pipeline run.
func (a *Archive) RecordRun(ctx context.Context, run RunSummary) error {
	_, err := a.db.ExecContext(ctx, `
INSERT INTO runs (
  run_id, generated_at, month, year,
  complete_campuses, total_campuses, total_insights,
  accurate_campuses, total_issues, accuracy_rate, incomplete_run
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.GeneratedAt.UTC(), run.Month, run.Year,
		run.CompleteCampuses, run.TotalCampuses, run.TotalInsights,
		run.AccurateCampuses, run.TotalIssues, run.AccuracyRate,
		boolToInt(run.IncompleteRun),
	)
	if err != nil {
		return WriteError(a.path, err)
	}
	return nil
}

// ListRuns returns archived runs, most recent first. A non-positive
// limit returns all runs.
func (a *Archive) ListRuns(
	ctx context.Context, limit int,
) ([]RunSummary, error) {
	q := `
SELECT run_id, generated_at, month, year,
       complete_campuses, total_campuses, total_insights,
       accurate_campuses, total_issues, accuracy_rate, incomplete_run
  FROM runs
 ORDER BY generated_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(a.path, err)
	}
	defer rows.Close()

	var res []RunSummary
	for rows.Next() {
		var r RunSummary
		var incomplete int
		err = rows.Scan(
			&r.RunID, &r.GeneratedAt, &r.Month, &r.Year,
			&r.CompleteCampuses, &r.TotalCampuses, &r.TotalInsights,
			&r.AccurateCampuses, &r.TotalIssues, &r.AccuracyRate,
			&incomplete,
		)
		if err != nil {
			return nil, QueryError(a.path, err)
		}
		r.IncompleteRun = incomplete != 0
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(a.path, err)
	}
	return res, nil
}

// Summarize flattens the three stage reports into one archive row.
func Summarize(
	v *report.Validation,
	ins *report.Insights,
	q *report.Quality,
) RunSummary {
	res := RunSummary{
		RunID:       v.Meta.RunID,
		GeneratedAt: v.Meta.GeneratedAt,
		Month:       v.Meta.Month,
		Year:        v.Meta.Year,

		CompleteCampuses: v.CompleteCampuses,
		TotalCampuses:    v.TotalCampuses,
	}
	if ins != nil {
		res.TotalInsights = ins.TotalInsights
		res.IncompleteRun = ins.Meta.IncompleteRun
	}
	if q != nil {
		res.AccurateCampuses = q.AccurateCampuses
		res.TotalIssues = q.TotalIssuesFound
		res.AccuracyRate = q.OverallAccuracyRate
	}
	return res
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
