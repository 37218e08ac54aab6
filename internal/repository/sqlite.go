package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens the database file with WAL journaling and a busy
// timeout. SQLite allows one writer at a time, so the pool is capped at a
// single connection.
func NewSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

const (
	txMaxAttempts = 3
	txBackoffStep = 100 * time.Millisecond
)

func isBusyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// withTx runs fn inside a transaction, retrying the whole transaction up to
// txMaxAttempts times with linear backoff when the database is locked.
// Any error from fn rolls the transaction back, so multi-row commits are
// all-or-nothing.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = runTx(db, fn)
		if err == nil || !isBusyErr(err) {
			return err
		}
		time.Sleep(time.Duration(attempt) * txBackoffStep)
	}
	return err
}

func runTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// formatTimestamp converts time.Time to a SQLite-friendly UTC ISO8601
// string. The Z suffix makes lexicographic comparison match time order.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse("2006-01-02T15:04:05Z", s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
