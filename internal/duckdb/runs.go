package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	goduckdb "github.com/marcboeker/go-duckdb"
)

// RunRecord is one row of the run history.
type RunRecord struct {
	RunID           string
	StartedAt       time.Time
	Engine          string
	TruthVCF        string
	CallVCF         string
	Reference       string
	Sample          string
	ExcludeFiltered bool
	MatchGenotype   bool
	TPPath          string
	FNPath          string
	FPPath          string
	TP, FN, FP      int64
	Precision       float64
	Recall          float64
	F1              float64
}

// NewRunID returns a time-ordered identifier for a run.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// RecordRun appends r to the history, assigning a RunID when empty.
func (s *Store) RecordRun(r *RunRecord) error {
	if r.RunID == "" {
		r.RunID = NewRunID()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "comparison_runs")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	if err := appender.AppendRow(
		r.RunID, r.StartedAt.UTC(), r.Engine, r.TruthVCF, r.CallVCF, r.Reference, r.Sample,
		r.ExcludeFiltered, r.MatchGenotype,
		r.TPPath, r.FNPath, r.FPPath,
		r.TP, r.FN, r.FP,
		r.Precision, r.Recall, r.F1,
	); err != nil {
		return fmt.Errorf("append run: %w", err)
	}

	return appender.Flush()
}

// ListRuns returns runs oldest first. An empty engine matches every engine;
// limit <= 0 returns all rows, otherwise the most recent limit rows.
func (s *Store) ListRuns(engine string, limit int) ([]RunRecord, error) {
	query := `SELECT
		run_id, started_at, engine, truth_vcf, call_vcf, reference, sample,
		exclude_filtered, match_genotype,
		tp_path, fn_path, fp_path,
		tp, fn, fp, precision_score, recall_score, f1_score
		FROM comparison_runs`
	var args []any
	if engine != "" {
		query += " WHERE engine = ?"
		args = append(args, engine)
	}
	query += " ORDER BY started_at DESC, run_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID, &r.StartedAt, &r.Engine, &r.TruthVCF, &r.CallVCF, &r.Reference, &r.Sample,
			&r.ExcludeFiltered, &r.MatchGenotype,
			&r.TPPath, &r.FNPath, &r.FPPath,
			&r.TP, &r.FN, &r.FP, &r.Precision, &r.Recall, &r.F1,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	// Reverse to oldest first.
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

// RunCount returns the number of recorded runs.
func (s *Store) RunCount() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM comparison_runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// ClearRuns removes all recorded runs.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM comparison_runs")
	return err
}
