// Package matchdb keeps a small SQLite history of played matches.
package matchdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nstehr/myco/myco-core/telemetry"
)

// Match is one row of the history.
type Match struct {
	ID         int64
	TeamID     string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the match is running
	LastTick   int
	Ticks      int
	MaxSpores  int
	Sacrifices int

	MeanDecisionMicros   float64
	StddevDecisionMicros float64
}

// DB is a match history store. A nil *DB records nothing.
type DB struct {
	db *sql.DB
}

// Open creates or opens the database at path. Returns nil if path is empty
// (history disabled).
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			team_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			last_tick INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			max_spores INTEGER NOT NULL DEFAULT 0,
			sacrifices INTEGER NOT NULL DEFAULT 0,
			mean_decision_us REAL NOT NULL DEFAULT 0,
			stddev_decision_us REAL NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_matches_team ON matches(team_id, id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// StartMatch inserts a running match and returns its id. With history
// disabled it returns 0.
func (d *DB) StartMatch(teamID string) (int64, error) {
	if d == nil {
		return 0, nil
	}
	res, err := d.db.Exec(
		`INSERT INTO matches(team_id, started_at) VALUES(?, ?)`,
		teamID, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("start match: %w", err)
	}
	return res.LastInsertId()
}

// FinishMatch stores the match summary.
func (d *DB) FinishMatch(id int64, s telemetry.Summary) error {
	if d == nil {
		return nil
	}
	res, err := d.db.Exec(
		`UPDATE matches SET finished_at=?, last_tick=?, ticks=?, max_spores=?, sacrifices=?,
			mean_decision_us=?, stddev_decision_us=? WHERE id=?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		s.LastTick, s.Ticks, s.MaxSpores, s.Sacrifices,
		s.MeanDecisionMicros, s.StddevDecisionMicros, id,
	)
	if err != nil {
		return fmt.Errorf("finish match %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish match %d: no such match", id)
	}
	return nil
}

// Recent returns up to n matches, newest first.
func (d *DB) Recent(n int) ([]Match, error) {
	if d == nil || n <= 0 {
		return nil, nil
	}
	rows, err := d.db.Query(
		`SELECT id, team_id, started_at, COALESCE(finished_at, ''), last_tick, ticks,
			max_spores, sacrifices, mean_decision_us, stddev_decision_us
		FROM matches ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var (
			m                 Match
			started, finished string
		)
		if err := rows.Scan(&m.ID, &m.TeamID, &started, &finished, &m.LastTick, &m.Ticks,
			&m.MaxSpores, &m.Sacrifices, &m.MeanDecisionMicros, &m.StddevDecisionMicros); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			m.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	return d.db.Close()
}
