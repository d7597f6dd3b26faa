package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"moneypal/internal/budget"
	"moneypal/internal/cli"
	"moneypal/internal/model"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show this month's budget and spending",
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

			summary := budget.BuildSummary(settings, byCategory, total)

			fmt.Println(cli.RenderBox(
				cli.MoneyIcon+" "+now.Format("January 2006"),
				fmt.Sprintf("Spending budget  %s\nSpent this month %s\nRemaining        %s",
					model.FormatCents(summary.SpendingBudgetCents),
					model.FormatCents(summary.SpentCents),
					model.FormatCents(summary.RemainingCents))))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "CATEGORY\tBUDGET\tSPENT\tREMAINING")
			for _, cat := range summary.Categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cat.Category.Label(),
					model.FormatCents(cat.BudgetCents),
					model.FormatCents(cat.SpentCents),
					model.FormatCents(cat.RemainingCents))
			}
			return nil
		},
	}
}
