package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS expenses (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					amount_cents INTEGER NOT NULL,
					currency TEXT NOT NULL,
					category TEXT NOT NULL,
					note TEXT NOT NULL,
					occurred_at TEXT NOT NULL,
					created_at TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS tags (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL
				)`,
				// Uniqueness is on the folded name so "Costco" and "costco"
				// are the same tag; the first-seen casing is what's stored.
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name_folded ON tags(lower(name))`,

				`CREATE TABLE IF NOT EXISTS expense_tags (
					expense_id INTEGER NOT NULL,
					tag_id INTEGER NOT NULL,
					PRIMARY KEY (expense_id, tag_id),
					FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE,
					FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
				)`,

				`CREATE TABLE IF NOT EXISTS settings (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					income_1_cents INTEGER NOT NULL DEFAULT 0,
					income_2_cents INTEGER NOT NULL DEFAULT 0,
					saving_goal_pct REAL NOT NULL DEFAULT 0
				)`,
				// The settings row is a singleton; self-initialize it so
				// first reads return zero-valued defaults.
				`INSERT OR IGNORE INTO settings (id, income_1_cents, income_2_cents, saving_goal_pct)
					VALUES (1, 0, 0, 0)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add per-category budget columns to settings",
		Up: func(tx *sql.Tx) error {
			columns := []string{
				"budget_fun_cents",
				"budget_groceris_cents",
				"budget_travel_cents",
				"budget_home_exp_cents",
				"budget_misc_cents",
			}
			for _, col := range columns {
				query := fmt.Sprintf("ALTER TABLE settings ADD COLUMN %s INTEGER NOT NULL DEFAULT 0", col)
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to add column %s: %w", col, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add indexes for filtered and bucketed reads",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_expenses_occurred_at ON expenses(occurred_at)`,
				`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)`,
				`CREATE INDEX IF NOT EXISTS idx_expense_tags_tag_id ON expense_tags(tag_id)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
