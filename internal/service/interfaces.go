// Package service defines the contracts between the presentation layer and
// the persistence/aggregation engine.
package service

import (
	"context"
	"time"

	"moneypal/internal/model"
)

// ExpenseFilter narrows expense queries. StartDate is inclusive; EndDate is
// end-of-day inclusive (the store queries strictly before the following
// midnight). Search matches note, category and tag names case-insensitively
// as a substring; Tag is a case-insensitive exact match.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Tag       string
	Limit     int
}

// MonthlyTotal is a calendar-month spending bucket keyed "YYYY-MM".
type MonthlyTotal struct {
	Month      string
	TotalCents int64
}

// WeeklyTotal is a week bucket keyed "YYYY-WNN".
type WeeklyTotal struct {
	Week       string
	TotalCents int64
}

// MonthCategoryTotal is one cell of the month-by-category spending matrix.
// Months with no spend in a category have no row; consumers treat absence
// as zero.
type MonthCategoryTotal struct {
	Month      string
	Category   model.Category
	TotalCents int64
}

// KPIMetrics summarizes a filtered expense set. AvgCents is the mean amount
// with integer truncation toward zero. FirstDate and LastDate are empty
// when no expenses match.
type KPIMetrics struct {
	FirstDate        string
	LastDate         string
	TotalCents       int64
	AvgCents         int64
	TransactionCount int64
}

// SavingsRatePoint is one month of (income - spent) / income, as a
// percentage, alongside the inputs that produced it.
type SavingsRatePoint struct {
	Month       string
	RatePct     float64
	SpentCents  int64
	IncomeCents int64
}

// TagTotal is a tag's overall spending and transaction count.
type TagTotal struct {
	Name             string
	TotalCents       int64
	TransactionCount int64
}

// TagMonthTotal is one tag's spending within one month bucket.
type TagMonthTotal struct {
	Month      string
	Name       string
	TotalCents int64
}

// RetryOptions configures retry behavior for transient store failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Ledger is the durable record of expenses and tags.
type Ledger interface {
	InsertExpense(ctx context.Context, note string, amountCents int64, category model.Category, occurredOn time.Time, tags []string) (int64, error)
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	UpdateExpense(ctx context.Context, id int64, note string, amountCents int64, category model.Category, occurredOn time.Time, tags []string) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	SpentByCategoryForMonth(ctx context.Context, ref time.Time) (map[model.Category]int64, error)
	SpentTotalForMonth(ctx context.Context, ref time.Time) (int64, error)
	AllTagNames(ctx context.Context, limit int) ([]string, error)
}

// SettingsStore is the durable singleton budget configuration.
type SettingsStore interface {
	GetSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error
	Reset(ctx context.Context, confirm string) error
}

// Aggregator computes the time-bucketed rollups behind dashboards and
// trend charts. All monetary outputs are cents.
type Aggregator interface {
	MonthlyTotals(ctx context.Context, limit int, filter ExpenseFilter) ([]MonthlyTotal, error)
	WeeklyTotals(ctx context.Context, limit int) ([]WeeklyTotal, error)
	MonthlyCategoryTotals(ctx context.Context, limitMonths int, filter ExpenseFilter) ([]MonthCategoryTotal, error)
	GetKPIMetrics(ctx context.Context, filter ExpenseFilter) (KPIMetrics, error)
	MonthlySavingsRate(ctx context.Context, limit int) ([]SavingsRatePoint, error)
	TagSpendingOverTime(ctx context.Context, tagName string, limitMonths int) ([]MonthlyTotal, error)
	TopTagsBySpending(ctx context.Context, limit int) ([]TagTotal, error)
	TagSpendingByMonth(ctx context.Context, limitMonths int) ([]TagMonthTotal, error)
}

// Storage is the full persistence contract the CLI and TUI depend on.
type Storage interface {
	Ledger
	SettingsStore
	Aggregator

	Migrate(ctx context.Context) error
	Close() error
}
