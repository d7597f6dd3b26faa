package storage

import (
	"context"
	"fmt"
	"strings"

	"moneypal/internal/model"
	"moneypal/internal/service"
)

// Aggregation queries. Month buckets are the lexical "YYYY-MM" prefix of
// the stored timestamp and week buckets come from strftime's %Y-W%W, both
// monotonic with chronological order, so sorting the key as a string sorts
// by time. Recency limits cover months that actually have data; empty
// months are absent from results, not zero-filled.

// analyticsFilter renders the date-range and search conditions shared by
// the aggregation queries. Search matches note and category here, not tag
// names.
func analyticsFilter(filter service.ExpenseFilter) (string, []any) {
	var (
		parts []string
		args  []any
	)

	if filter.StartDate != nil {
		parts = append(parts, `occurred_at >= ?`)
		args = append(args, midnightOf(*filter.StartDate).Format(timeLayout))
	}
	if filter.EndDate != nil {
		parts = append(parts, `occurred_at < ?`)
		args = append(args, midnightOf(*filter.EndDate).AddDate(0, 0, 1).Format(timeLayout))
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Search)); q != "" {
		parts = append(parts, `(LOWER(COALESCE(note, '')) LIKE ? OR LOWER(COALESCE(category, '')) LIKE ?)`)
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	if len(parts) == 0 {
		return "1=1", nil
	}
	return strings.Join(parts, " AND "), args
}

// MonthlyTotals returns spending per calendar month for the most recent
// months with data, in ascending chronological order.
func (s *SQLiteStorage) MonthlyTotals(ctx context.Context, limit int, filter service.ExpenseFilter) ([]service.MonthlyTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 6
	}

	whereSQL, args := analyticsFilter(filter)
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT substr(occurred_at, 1, 7) AS ym,
		       COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM expenses
		WHERE %s
		GROUP BY ym
		ORDER BY ym DESC
		LIMIT ?`, whereSQL)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []service.MonthlyTotal
	for rows.Next() {
		var t service.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.TotalCents); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals: %w", err)
	}

	reverseSlice(totals)
	return totals, nil
}

// WeeklyTotals returns spending per week for the most recent weeks with
// data, in ascending chronological order.
func (s *SQLiteStorage) WeeklyTotals(ctx context.Context, limit int) ([]service.WeeklyTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-W%W', occurred_at) AS yw,
		       COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM expenses
		GROUP BY yw
		ORDER BY yw DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly totals: %w", err)
	}
	defer rows.Close()

	var totals []service.WeeklyTotal
	for rows.Next() {
		var t service.WeeklyTotal
		if err := rows.Scan(&t.Week, &t.TotalCents); err != nil {
			return nil, fmt.Errorf("failed to scan weekly total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly totals: %w", err)
	}

	reverseSlice(totals)
	return totals, nil
}

// MonthlyCategoryTotals returns per-category spending within the most
// recent limitMonths months that have any data. The month set is
// determined first, independently of category; a category with no spend in
// a month has no row.
func (s *SQLiteStorage) MonthlyCategoryTotals(ctx context.Context, limitMonths int, filter service.ExpenseFilter) ([]service.MonthCategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limitMonths <= 0 {
		limitMonths = 6
	}

	whereSQL, whereArgs := analyticsFilter(filter)

	// The filter applies both to the month-selection CTE and the outer
	// aggregation, so the args appear twice.
	args := make([]any, 0, 2*len(whereArgs)+1)
	args = append(args, whereArgs...)
	args = append(args, limitMonths)
	args = append(args, whereArgs...)

	query := fmt.Sprintf(`
		WITH months AS (
		  SELECT substr(occurred_at, 1, 7) AS ym
		  FROM expenses
		  WHERE %s
		  GROUP BY ym
		  ORDER BY ym DESC
		  LIMIT ?
		)
		SELECT substr(occurred_at, 1, 7) AS ym,
		       category,
		       COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM expenses
		WHERE substr(occurred_at, 1, 7) IN (SELECT ym FROM months)
		  AND %s
		GROUP BY ym, category
		ORDER BY ym ASC`, whereSQL, whereSQL)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly category totals: %w", err)
	}
	defer rows.Close()

	var totals []service.MonthCategoryTotal
	for rows.Next() {
		var (
			t   service.MonthCategoryTotal
			cat string
		)
		if err := rows.Scan(&t.Month, &cat, &t.TotalCents); err != nil {
			return nil, fmt.Errorf("failed to scan monthly category total: %w", err)
		}
		t.Category = model.Category(cat)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly category totals: %w", err)
	}
	return totals, nil
}

// GetKPIMetrics summarizes the filtered expense set. The average amount is
// total divided by count with truncation toward zero.
func (s *SQLiteStorage) GetKPIMetrics(ctx context.Context, filter service.ExpenseFilter) (service.KPIMetrics, error) {
	if err := validateContext(ctx); err != nil {
		return service.KPIMetrics{}, err
	}

	whereSQL, args := analyticsFilter(filter)

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount_cents), 0),
		       COUNT(*),
		       COALESCE(MIN(occurred_at), ''),
		       COALESCE(MAX(occurred_at), '')
		FROM expenses
		WHERE %s`, whereSQL)

	var metrics service.KPIMetrics
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&metrics.TotalCents, &metrics.TransactionCount, &metrics.FirstDate, &metrics.LastDate)
	if err != nil {
		return service.KPIMetrics{}, fmt.Errorf("failed to query KPI metrics: %w", err)
	}

	if metrics.TransactionCount > 0 {
		metrics.AvgCents = metrics.TotalCents / metrics.TransactionCount
	}
	return metrics, nil
}

// MonthlySavingsRate derives (income - spent) / income per month from the
// configured income. A zero or negative total income yields an empty
// result; there is no meaningful rate to compute.
func (s *SQLiteStorage) MonthlySavingsRate(ctx context.Context, limit int) ([]service.SavingsRatePoint, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	income := settings.TotalIncomeCents()
	if income <= 0 {
		return nil, nil
	}

	months, err := s.MonthlyTotals(ctx, limit, service.ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	points := make([]service.SavingsRatePoint, 0, len(months))
	for _, m := range months {
		points = append(points, service.SavingsRatePoint{
			Month:       m.Month,
			RatePct:     float64(income-m.TotalCents) / float64(income) * 100.0,
			SpentCents:  m.TotalCents,
			IncomeCents: income,
		})
	}
	return points, nil
}

// TagSpendingOverTime returns monthly spending carrying the given tag.
// The tag match is a case-insensitive exact match, not a substring.
func (s *SQLiteStorage) TagSpendingOverTime(ctx context.Context, tagName string, limitMonths int) ([]service.MonthlyTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(tagName, "tagName"); err != nil {
		return nil, err
	}
	if limitMonths <= 0 {
		limitMonths = 12
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(e.occurred_at, 1, 7) AS ym,
		       COALESCE(SUM(e.amount_cents), 0) AS total_cents
		FROM expenses e
		JOIN expense_tags et ON et.expense_id = e.id
		JOIN tags t ON t.id = et.tag_id
		WHERE LOWER(t.name) = LOWER(?)
		GROUP BY ym
		ORDER BY ym DESC
		LIMIT ?`, strings.TrimSpace(tagName), limitMonths)
	if err != nil {
		return nil, fmt.Errorf("failed to query tag spending: %w", err)
	}
	defer rows.Close()

	var totals []service.MonthlyTotal
	for rows.Next() {
		var t service.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.TotalCents); err != nil {
			return nil, fmt.Errorf("failed to scan tag spending: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag spending: %w", err)
	}

	reverseSlice(totals)
	return totals, nil
}

// TopTagsBySpending returns tags ordered by total spending descending.
func (s *SQLiteStorage) TopTagsBySpending(ctx context.Context, limit int) ([]service.TagTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name,
		       COALESCE(SUM(e.amount_cents), 0) AS total_cents,
		       COUNT(DISTINCT e.id) AS transaction_count
		FROM tags t
		JOIN expense_tags et ON et.tag_id = t.id
		JOIN expenses e ON e.id = et.expense_id
		GROUP BY t.name
		ORDER BY total_cents DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top tags: %w", err)
	}
	defer rows.Close()

	var totals []service.TagTotal
	for rows.Next() {
		var t service.TagTotal
		if err := rows.Scan(&t.Name, &t.TotalCents, &t.TransactionCount); err != nil {
			return nil, fmt.Errorf("failed to scan top tag: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top tags: %w", err)
	}
	return totals, nil
}

// TagSpendingByMonth returns per-tag spending within the most recent
// limitMonths months that have any data, ascending by month.
func (s *SQLiteStorage) TagSpendingByMonth(ctx context.Context, limitMonths int) ([]service.TagMonthTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limitMonths <= 0 {
		limitMonths = 6
	}

	rows, err := s.db.QueryContext(ctx, `
		WITH months AS (
		  SELECT substr(occurred_at, 1, 7) AS ym
		  FROM expenses
		  GROUP BY ym
		  ORDER BY ym DESC
		  LIMIT ?
		)
		SELECT substr(e.occurred_at, 1, 7) AS ym,
		       t.name,
		       COALESCE(SUM(e.amount_cents), 0) AS total_cents
		FROM expenses e
		JOIN expense_tags et ON et.expense_id = e.id
		JOIN tags t ON t.id = et.tag_id
		WHERE substr(e.occurred_at, 1, 7) IN (SELECT ym FROM months)
		GROUP BY ym, t.name
		ORDER BY ym ASC`, limitMonths)
	if err != nil {
		return nil, fmt.Errorf("failed to query tag spending by month: %w", err)
	}
	defer rows.Close()

	var totals []service.TagMonthTotal
	for rows.Next() {
		var t service.TagMonthTotal
		if err := rows.Scan(&t.Month, &t.Name, &t.TotalCents); err != nil {
			return nil, fmt.Errorf("failed to scan tag month total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag spending by month: %w", err)
	}
	return totals, nil
}

// reverseSlice flips a slice in place; aggregates are fetched most-recent
// first and presented oldest first.
func reverseSlice[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
