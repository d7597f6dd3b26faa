package main

import (
	"time"

	"github.com/spf13/cobra"

	"moneypal/internal/budget"
	"moneypal/internal/service"
	"moneypal/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			now := time.Now()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}
			byCategory, err := store.SpentByCategoryForMonth(ctx, now)
			if err != nil {
				return err
			}
			total, err := store.SpentTotalForMonth(ctx, now)
			if err != nil {
				return err
			}
			expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{Limit: 200})
			if err != nil {
				return err
			}
			monthly, err := store.MonthlyTotals(ctx, 12, service.ExpenseFilter{})
			if err != nil {
				return err
			}

			summary := budget.BuildSummary(settings, byCategory, total)
			return tui.Run(tui.NewModel(summary, expenses, monthly))
		},
	}
}
