// Package duckdb keeps a history of comparison runs in a DuckDB database,
// so accuracy can be tracked across caller versions.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for the run history.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS comparison_runs (
		run_id VARCHAR PRIMARY KEY,
		started_at TIMESTAMP,
		engine VARCHAR,
		truth_vcf VARCHAR,
		call_vcf VARCHAR,
		reference VARCHAR,
		sample VARCHAR,
		exclude_filtered BOOLEAN,
		match_genotype BOOLEAN,
		tp_path VARCHAR,
		fn_path VARCHAR,
		fp_path VARCHAR,
		tp BIGINT,
		fn BIGINT,
		fp BIGINT,
		precision_score DOUBLE,
		recall_score DOUBLE,
		f1_score DOUBLE
	)`)
	return err
}
