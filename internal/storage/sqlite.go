package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"moneypal/internal/common"
	"moneypal/internal/service"

	"github.com/mattn/go-sqlite3" // SQLite driver
)

// timeLayout is the ISO-8601 format used for all stored timestamps. Month
// and week bucket keys are derived from this string's lexical prefix, so
// lexical and chronological order agree.
const timeLayout = "2006-01-02T15:04:05"

// SQLiteStorage implements the service.Storage contract on an embedded
// SQLite database. SQLite allows one writer at a time; all writes go
// through withWriteTx, which serializes them on a single connection and
// retries transient lock contention with bounded backoff.
type SQLiteStorage struct {
	db        *sql.DB
	dbPath    string
	retryOpts service.RetryOptions
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		retryOpts: service.RetryOptions{
			MaxAttempts:  6,
			InitialDelay: 40 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// withWriteTx runs fn inside a transaction, retrying the whole transaction
// when SQLite reports lock contention. Exhausted retries surface as a
// store failure rather than being swallowed.
func (s *SQLiteStorage) withWriteTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return common.WithRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return markIfBusy(fmt.Errorf("failed to begin transaction: %w", err))
		}

		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return markIfBusy(err)
		}

		if err := tx.Commit(); err != nil {
			return markIfBusy(fmt.Errorf("failed to commit transaction: %w", err))
		}
		return nil
	}, s.retryOpts)
}

// markIfBusy flags SQLITE_BUSY / SQLITE_LOCKED errors as retryable so the
// retry wrapper knows to back off and try again.
func markIfBusy(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return &common.RetryableError{Err: err, Retryable: true}
		}
	}
	return err
}
