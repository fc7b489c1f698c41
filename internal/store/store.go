// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted growth records in SQLite so individual
// ages can be looked up without re-reading the source table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/growth-tables/pkg/types"
)

const dbFile = "growth.db"

// ErrNotFound reports a dataset or age with no stored rows.
var ErrNotFound = errors.New("not found")

// percentileColumns are the value columns in types.PercentileKeys order.
var percentileColumns = strings.Join(types.PercentileKeys, ", ")

// Store manages the growth SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open opens or creates dataDir/growth.db and its schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = types.DefaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
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

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			name TEXT PRIMARY KEY,
			ingested_at TEXT NOT NULL,
			boy_points INTEGER NOT NULL,
			girl_points INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS growth_points (
			dataset TEXT NOT NULL REFERENCES datasets(name) ON DELETE CASCADE,
			gender TEXT NOT NULL,
			idx INTEGER NOT NULL,
			age_months INTEGER NOT NULL,
			p0_4 REAL NOT NULL,
			p2 REAL NOT NULL,
			p9 REAL NOT NULL,
			p25 REAL NOT NULL,
			p50 REAL NOT NULL,
			p75 REAL NOT NULL,
			p91 REAL NOT NULL,
			p98 REAL NOT NULL,
			p99_6 REAL NOT NULL,
			PRIMARY KEY (dataset, gender, idx)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_points_age ON growth_points(dataset, gender, age_months)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds the row counts written by Ingest.
type IngestSummary struct {
	Dataset string
	Boy     int
	Girl    int
}

// Total returns the number of rows written.
func (s IngestSummary) Total() int {
	return s.Boy + s.Girl
}

// Ingest replaces the stored rows of dataset with rec in one transaction.
func (s *Store) Ingest(ctx context.Context, dataset string, rec *types.GrowthRecord) (IngestSummary, error) {
	if dataset == "" {
		return IngestSummary{}, fmt.Errorf("dataset name is required")
	}
	for _, g := range types.Genders {
		if !rec.Series(g).Aligned() {
			return IngestSummary{}, fmt.Errorf("%s series are not aligned with ages", g)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM growth_points WHERE dataset = ?`, dataset); err != nil {
		return IngestSummary{}, fmt.Errorf("deleting old points: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (name, ingested_at, boy_points, girl_points) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			ingested_at=excluded.ingested_at, boy_points=excluded.boy_points, girl_points=excluded.girl_points`,
		dataset, time.Now().UTC().Format(time.RFC3339Nano), rec.Boy.Len(), rec.Girl.Len(),
	)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("upserting dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO growth_points (dataset, gender, idx, age_months, `+percentileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range types.Genders {
		series := rec.Series(g)
		for i, age := range series.Ages {
			v := series.Percentiles.At(i)
			_, err := stmt.ExecContext(ctx, dataset, string(g), i, age,
				v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8])
			if err != nil {
				return IngestSummary{}, fmt.Errorf("inserting %s point %d: %w", g, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing: %w", err)
	}
	return IngestSummary{Dataset: dataset, Boy: rec.Boy.Len(), Girl: rec.Girl.Len()}, nil
}

// Dataset describes one stored dataset.
type Dataset struct {
	Name       string    `json:"name" yaml:"name"`
	IngestedAt time.Time `json:"ingested_at" yaml:"ingested_at"`
	BoyPoints  int       `json:"boy_points" yaml:"boy_points"`
	GirlPoints int       `json:"girl_points" yaml:"girl_points"`
}

// Datasets lists stored datasets by name.
func (s *Store) Datasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, ingested_at, boy_points, girl_points FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var out []Dataset
	for rows.Next() {
		var d Dataset
		var ingestedAt string
		if err := rows.Scan(&d.Name, &ingestedAt, &d.BoyPoints, &d.GirlPoints); err != nil {
			return nil, fmt.Errorf("scanning dataset: %w", err)
		}
		at, err := time.Parse(time.RFC3339Nano, ingestedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing ingested_at for %s: %w", d.Name, err)
		}
		d.IngestedAt = at
		out = append(out, d)
	}
	return out, rows.Err()
}
