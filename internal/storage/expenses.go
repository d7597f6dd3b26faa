package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"moneypal/internal/model"
	"moneypal/internal/service"
)

const defaultListLimit = 500

// tagSeparator joins tag names inside GROUP_CONCAT; the unit separator
// cannot appear in a trimmed tag name.
const tagSeparator = "\x1f"

// InsertExpense records a new expense and returns its store-assigned id.
// Not-yet-seen tags are created as a side effect. The time component of
// occurredOn is discarded; expenses are dated to midnight.
func (s *SQLiteStorage) InsertExpense(ctx context.Context, note string, amountCents int64, category model.Category, occurredOn time.Time, tags []string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateExpenseInput(note, amountCents, category); err != nil {
		return 0, err
	}

	occurredAt := midnightOf(occurredOn).Format(timeLayout)
	createdAt := time.Now().Format(timeLayout)
	names := model.NormalizeTagNames(tags)

	var id int64
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (amount_cents, currency, category, note, occurred_at, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			amountCents, model.DefaultCurrency, string(category), strings.TrimSpace(note), occurredAt, createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read expense id: %w", err)
		}

		return s.setExpenseTagsTx(ctx, tx, id, names)
	})
	if err != nil {
		return 0, err
	}

	slog.Debug("inserted expense", "id", id, "category", string(category), "amount_cents", amountCents)
	return id, nil
}

// GetExpense returns the expense with the given id, or nil if it does not
// exist.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		exp                   model.Expense
		occurredAt, createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, amount_cents, currency, category, note, occurred_at, created_at
		FROM expenses
		WHERE id = ?`, id).Scan(
		&exp.ID, &exp.AmountCents, &exp.Currency, &exp.Category, &exp.Note, &occurredAt, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	exp.OccurredAt = parseStoredTime(occurredAt)
	exp.CreatedAt = parseStoredTime(createdAt)

	tags, err := s.expenseTags(ctx, id)
	if err != nil {
		return nil, err
	}
	exp.Tags = tags

	return &exp, nil
}

// UpdateExpense replaces every user-settable field of an expense, including
// its full tag set. Updating a missing id is a caller error and returns
// ErrNotFound.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id int64, note string, amountCents int64, category model.Category, occurredOn time.Time, tags []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpenseInput(note, amountCents, category); err != nil {
		return err
	}

	occurredAt := midnightOf(occurredOn).Format(timeLayout)
	names := model.NormalizeTagNames(tags)

	return s.withWriteTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE expenses
			   SET amount_cents = ?,
			       category = ?,
			       note = ?,
			       occurred_at = ?
			 WHERE id = ?`,
			amountCents, string(category), strings.TrimSpace(note), occurredAt, id)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update result: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}

		return s.setExpenseTagsTx(ctx, tx, id, names)
	})
}

// DeleteExpense removes an expense and its tag associations. Deleting a
// nonexistent id is a no-op.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.withWriteTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return nil
	})
}

// ListExpenses returns expenses matching the filter, ordered by occurrence
// date descending with id descending as the tie-break.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, filter.StartDate, filter.EndDate)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		whereParts []string
		args       []any
	)

	if q := strings.ToLower(strings.TrimSpace(filter.Search)); q != "" {
		whereParts = append(whereParts,
			`(LOWER(COALESCE(e.note, '')) LIKE ? OR LOWER(COALESCE(e.category, '')) LIKE ? OR LOWER(COALESCE(t.name, '')) LIKE ?)`)
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.StartDate != nil {
		whereParts = append(whereParts, `e.occurred_at >= ?`)
		args = append(args, midnightOf(*filter.StartDate).Format(timeLayout))
	}
	if filter.EndDate != nil {
		// End date is end-of-day inclusive: strictly before the next midnight.
		whereParts = append(whereParts, `e.occurred_at < ?`)
		args = append(args, midnightOf(*filter.EndDate).AddDate(0, 0, 1).Format(timeLayout))
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		whereParts = append(whereParts, `LOWER(t.name) = LOWER(?)`)
		args = append(args, tag)
	}

	whereSQL := ""
	if len(whereParts) > 0 {
		whereSQL = "WHERE " + strings.Join(whereParts, " AND ")
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT e.id,
		       e.amount_cents,
		       e.currency,
		       e.category,
		       e.note,
		       e.occurred_at,
		       e.created_at,
		       COALESCE(GROUP_CONCAT(t.name, char(31)), '') AS tag_names
		FROM expenses e
		LEFT JOIN expense_tags et ON et.expense_id = e.id
		LEFT JOIN tags t ON t.id = et.tag_id
		%s
		GROUP BY e.id
		ORDER BY e.occurred_at DESC, e.id DESC
		LIMIT ?`, whereSQL)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var (
			exp                   model.Expense
			occurredAt, createdAt string
			tagNames              string
		)
		if err := rows.Scan(&exp.ID, &exp.AmountCents, &exp.Currency, &exp.Category,
			&exp.Note, &occurredAt, &createdAt, &tagNames); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		exp.OccurredAt = parseStoredTime(occurredAt)
		exp.CreatedAt = parseStoredTime(createdAt)
		if tagNames != "" {
			exp.Tags = model.NormalizeTagNames(strings.Split(tagNames, tagSeparator))
		}
		expenses = append(expenses, exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("listed expenses", "count", len(expenses))
	return expenses, nil
}

// SpentByCategoryForMonth totals spending per category for the calendar
// month containing ref. Categories without expenses report zero.
func (s *SQLiteStorage) SpentByCategoryForMonth(ctx context.Context, ref time.Time) (map[model.Category]int64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	start, end := monthWindow(ref)

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COALESCE(SUM(amount_cents), 0)
		FROM expenses
		WHERE occurred_at >= ? AND occurred_at < ?
		GROUP BY category`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query category spending: %w", err)
	}
	defer rows.Close()

	result := make(map[model.Category]int64, len(model.Categories()))
	for _, cat := range model.Categories() {
		result[cat] = 0
	}
	for rows.Next() {
		var (
			cat   string
			total int64
		)
		if err := rows.Scan(&cat, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category spending: %w", err)
		}
		if _, known := result[model.Category(cat)]; known {
			result[model.Category(cat)] = total
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category spending: %w", err)
	}
	return result, nil
}

// SpentTotalForMonth totals all spending for the calendar month containing
// ref.
func (s *SQLiteStorage) SpentTotalForMonth(ctx context.Context, ref time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	start, end := monthWindow(ref)

	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM expenses
		WHERE occurred_at >= ? AND occurred_at < ?`, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to query month total: %w", err)
	}
	return total, nil
}

// monthWindow returns the stored-format bounds of the calendar month
// containing ref: first of the month inclusive, first of the next month
// exclusive.
func monthWindow(ref time.Time) (string, string) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0)
	return start.Format(timeLayout), end.Format(timeLayout)
}

// midnightOf truncates a timestamp to the start of its day.
func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseStoredTime parses a stored ISO-8601 timestamp, falling back to the
// zero time on malformed data.
func parseStoredTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
