// Package storage provides the data persistence layer for the moneypal
// application: the expense ledger, the settings singleton, and the
// aggregation queries that power dashboards and analytics.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moneypal/internal/budget"
	"moneypal/internal/model"
)

// ResetConfirmation is the literal token callers must supply to perform a
// destructive reset.
const ResetConfirmation = "RESET"

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")

	// ErrValidation indicates caller input that cannot be persisted. It is
	// always recoverable and never mutates data.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates an operation against a missing expense id.
	ErrNotFound = errors.New("expense not found")
	// ErrInvalidDateRange indicates a filter whose end precedes its start.
	ErrInvalidDateRange = errors.New("start date must be before end date")
	// ErrInvalidConfirmation indicates a reset without the literal token.
	ErrInvalidConfirmation = errors.New(`reset requires the confirmation token "RESET"`)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExpenseInput checks the user-settable fields of an expense.
func validateExpenseInput(note string, amountCents int64, category model.Category) error {
	if strings.TrimSpace(note) == "" {
		return fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if amountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, string(category))
	}
	return nil
}

// validateSettings refuses settings that cannot be persisted: a savings
// goal outside [0, 100], negative amounts, or category budgets that
// over-allocate the spending budget. Over-allocation is surfaced, never
// silently clamped.
func validateSettings(s model.Settings) error {
	if s.SavingGoalPct < 0 || s.SavingGoalPct > 100 {
		return fmt.Errorf("%w: saving goal must be between 0 and 100", ErrValidation)
	}
	for name, v := range map[string]int64{
		"income 1":         s.Income1Cents,
		"income 2":         s.Income2Cents,
		"fun budget":       s.BudgetFunCents,
		"groceries budget": s.BudgetGroceriesCents,
		"travel budget":    s.BudgetTravelCents,
		"home budget":      s.BudgetHomeCents,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrValidation, name)
		}
	}

	alloc := budget.AllocationFromSettings(s)
	if !alloc.Valid() {
		return fmt.Errorf("%w: category budgets (%d cents) exceed the spending budget (%d cents)",
			ErrValidation, alloc.AllocatedCents(), alloc.MaxBudgetCents)
	}
	return nil
}
