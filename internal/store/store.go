// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a SQLite snapshot of the embedding table so the
// explorer can start without re-parsing the source workbook.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/landscape/pkg/types"
)

// Store manages the snapshot database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the snapshot database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty: set store.path or --db")
	}
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: cfg.Path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY,
			category TEXT NOT NULL DEFAULT '',
			pub_year INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			abstract TEXT,
			authors TEXT,
			journal TEXT NOT NULL DEFAULT '',
			x REAL NOT NULL,
			y REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_category ON records(category)`,
		`CREATE INDEX IF NOT EXISTS idx_records_pub_year ON records(pub_year)`,
		`CREATE TABLE IF NOT EXISTS import_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT NOT NULL,
			records INTEGER NOT NULL,
			imported_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary describes one import run.
type ImportSummary struct {
	Source  string
	Records int
	Skipped bool
}

func modTime(source string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("reading source file: %w", err)
	}
	return info.ModTime().UTC().Format(time.RFC3339Nano), nil
}

// UpToDate reports whether the snapshot was imported from source and the
// source file has not changed since.
func (s *Store) UpToDate(ctx context.Context, source string) (bool, error) {
	mt, err := modTime(source)
	if err != nil {
		return false, err
	}
	var stored string
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM import_status WHERE source = ?`, source,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking import status: %w", err)
	}
	return stored == mt, nil
}

// Import replaces the snapshot with records in one transaction and records
// the source file's modification time. Progress is written to w.
func (s *Store) Import(ctx context.Context, source string, records []types.Record, w io.Writer) (ImportSummary, error) {
	mt, err := modTime(source)
	if err != nil {
		return ImportSummary{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM records`, `DELETE FROM import_status`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return ImportSummary{}, fmt.Errorf("clearing snapshot: %w", err)
		}
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, category, pub_year, title, abstract, authors, journal, x, y)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer ins.Close()

	for i, r := range records {
		_, err := ins.ExecContext(ctx,
			i, r.Category, r.PubYear, r.Title,
			nullString(r.Abstract), nullString(r.Authors),
			r.Journal, r.X, r.Y,
		)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_status (source, file_mod_time, records, imported_at) VALUES (?, ?, ?, ?)`,
		source, mt, len(records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("updating import status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "imported %d records from %s into %s\n", len(records), source, s.path)
	return ImportSummary{Source: source, Records: len(records)}, nil
}

// Records reads the snapshot back in row order.
func (s *Store) Records(ctx context.Context) ([]types.Record, error) {
	return s.query(ctx, "")
}

func (s *Store) query(ctx context.Context, category string) ([]types.Record, error) {
	q := `SELECT id, category, pub_year, title, abstract, authors, journal, x, y FROM records`
	var args []any
	if category != "" {
		q += ` WHERE category = ?`
		args = append(args, category)
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			r                 types.Record
			abstract, authors sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Category, &r.PubYear, &r.Title,
			&abstract, &authors, &r.Journal, &r.X, &r.Y); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if abstract.Valid {
			r.Abstract = &abstract.String
		}
		if authors.Valid {
			r.Authors = &authors.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
