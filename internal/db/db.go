package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	conn *sql.DB
	path string
}

func Open(path string) (*Database, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &Database{
		conn: conn,
		path: path,
	}

	if err := InitSchema(db); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Path() string {
	return db.path
}

func (db *Database) LogEntry(e *Entry) error {
	res, err := db.conn.Exec(`
		INSERT INTO timer_log (timer_id, label, duration_ms, started_at, ended_at, outcome, alert_error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.TimerID, e.Label, e.Duration.Milliseconds(),
		e.StartedAt.UTC().Format(time.RFC3339), e.EndedAt.UTC().Format(time.RFC3339),
		string(e.Outcome), e.AlertError,
	)
	if err != nil {
		return fmt.Errorf("logging timer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading timer log id: %w", err)
	}
	e.ID = id
	return nil
}

type scanFunc func(dest ...any) error

func scanEntry(scan scanFunc) (*Entry, error) {
	var e Entry
	var durationMs int64
	var startedAt, endedAt, outcome string

	err := scan(
		&e.ID, &e.TimerID, &e.Label, &durationMs,
		&startedAt, &endedAt, &outcome, &e.AlertError,
	)
	if err != nil {
		return nil, err
	}

	e.Duration = time.Duration(durationMs) * time.Millisecond
	e.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	e.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
	e.Outcome = Outcome(outcome)

	return &e, nil
}

// RecentEntries returns up to limit entries, newest first.
func (db *Database) RecentEntries(limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT id, timer_id, label, duration_ms, started_at, ended_at, outcome, alert_error
		FROM timer_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying timer log: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning timer log row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timer log rows: %w", err)
	}

	return entries, nil
}

func (db *Database) Summarize() (*Summary, error) {
	row := db.conn.QueryRow(`
		SELECT
		    COALESCE(SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN outcome = 'cancelled' THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN outcome = 'completed' THEN duration_ms ELSE 0 END), 0)
		FROM timer_log`)

	var s Summary
	var totalMs int64
	if err := row.Scan(&s.Completed, &s.Cancelled, &totalMs); err != nil {
		return nil, fmt.Errorf("summarizing timer log: %w", err)
	}
	s.TotalTime = time.Duration(totalMs) * time.Millisecond
	return &s, nil
}
