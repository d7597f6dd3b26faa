package storage

import (
	"context"
	"database/sql"
	"fmt"

	"moneypal/internal/model"
)

// AllTagNames returns every tag name, ordered alphabetically without
// regard to case.
func (s *SQLiteStorage) AllTagNames(ctx context.Context, limit int) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name
		FROM tags
		ORDER BY lower(name) ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return names, nil
}

// expenseTags loads an expense's tags ordered case-insensitively.
func (s *SQLiteStorage) expenseTags(ctx context.Context, expenseID int64) ([]model.TagName, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name
		FROM expense_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.expense_id = ?
		ORDER BY lower(t.name) ASC`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense tags: %w", err)
	}
	defer rows.Close()

	var tags []model.TagName
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan expense tag: %w", err)
		}
		name, err := model.NewTagName(raw)
		if err != nil {
			continue
		}
		tags = append(tags, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense tags: %w", err)
	}
	return tags, nil
}

// getOrCreateTagIDsTx resolves tag names to ids, creating missing tags.
// The insert-or-ignore-then-reselect sequence is keyed on the folded name,
// so two concurrent writers racing on the same new tag converge on a
// single row; the surrounding transaction is retried on contention. Both
// sides of the reselect fold inside SQLite so the comparison always agrees
// with the unique index on lower(name).
func (s *SQLiteStorage) getOrCreateTagIDsTx(ctx context.Context, tx *sql.Tx, names []model.TagName) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO tags (name) VALUES (?)`, name.String()); err != nil {
			return nil, fmt.Errorf("failed to insert tag %q: %w", name, err)
		}

		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM tags WHERE lower(name) = lower(?)`, name.String()).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// setExpenseTagsTx replaces an expense's tag set with exactly the given
// names, removing associations not present in the new set.
func (s *SQLiteStorage) setExpenseTagsTx(ctx context.Context, tx *sql.Tx, expenseID int64, names []model.TagName) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expense_tags WHERE expense_id = ?`, expenseID); err != nil {
		return fmt.Errorf("failed to clear expense tags: %w", err)
	}
	if len(names) == 0 {
		return nil
	}

	ids, err := s.getOrCreateTagIDsTx(ctx, tx, names)
	if err != nil {
		return err
	}

	for _, tagID := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO expense_tags (expense_id, tag_id) VALUES (?, ?)`,
			expenseID, tagID); err != nil {
			return fmt.Errorf("failed to associate tag: %w", err)
		}
	}
	return nil
}
