package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"moneypal/internal/budget"
	"moneypal/internal/model"
)

// GetSettings returns the singleton settings row. A database that has
// never been written returns zero-valued defaults.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}

	var settings model.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT income_1_cents, income_2_cents, saving_goal_pct,
		       budget_fun_cents, budget_groceris_cents, budget_travel_cents,
		       budget_home_exp_cents, budget_misc_cents
		FROM settings
		WHERE id = 1`).Scan(
		&settings.Income1Cents, &settings.Income2Cents, &settings.SavingGoalPct,
		&settings.BudgetFunCents, &settings.BudgetGroceriesCents, &settings.BudgetTravelCents,
		&settings.BudgetHomeCents, &settings.BudgetMiscCents)
	if err == sql.ErrNoRows {
		return model.Settings{}, nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}

	return settings, nil
}

// SaveSettings overwrites the singleton settings row. The misc budget is
// derived from the other four allocations, never taken from the caller.
// An over-allocated draft is refused with ErrValidation and nothing is
// persisted.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	alloc := budget.AllocationFromSettings(settings)
	settings.BudgetMiscCents = alloc.MiscCents()

	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO settings (id, income_1_cents, income_2_cents, saving_goal_pct)
			VALUES (1, 0, 0, 0)`); err != nil {
			return fmt.Errorf("failed to ensure settings row: %w", err)
		}

		_, err := tx.ExecContext(ctx, `
			UPDATE settings
			SET income_1_cents = ?,
			    income_2_cents = ?,
			    saving_goal_pct = ?,
			    budget_fun_cents = ?,
			    budget_groceris_cents = ?,
			    budget_travel_cents = ?,
			    budget_home_exp_cents = ?,
			    budget_misc_cents = ?
			WHERE id = 1`,
			settings.Income1Cents, settings.Income2Cents, settings.SavingGoalPct,
			settings.BudgetFunCents, settings.BudgetGroceriesCents, settings.BudgetTravelCents,
			settings.BudgetHomeCents, settings.BudgetMiscCents)
		if err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("saved settings",
		"income_cents", settings.TotalIncomeCents(),
		"saving_goal_pct", settings.SavingGoalPct)
	return nil
}

// Reset wipes all ledger data and zeroes the settings singleton in a
// single transaction: either both succeed or neither does. The caller must
// supply the literal confirmation token "RESET"; anything else is rejected
// without side effects.
func (s *SQLiteStorage) Reset(ctx context.Context, confirm string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(confirm) != ResetConfirmation {
		return ErrInvalidConfirmation
	}

	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		for _, query := range []string{
			`DELETE FROM expense_tags`,
			`DELETE FROM tags`,
			`DELETE FROM expenses`,
			`UPDATE settings
			 SET income_1_cents = 0,
			     income_2_cents = 0,
			     saving_goal_pct = 0,
			     budget_fun_cents = 0,
			     budget_groceris_cents = 0,
			     budget_travel_cents = 0,
			     budget_home_exp_cents = 0,
			     budget_misc_cents = 0
			 WHERE id = 1`,
		} {
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("failed to reset data: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("reset all data")
	return nil
}
