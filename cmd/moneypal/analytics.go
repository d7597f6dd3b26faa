package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"moneypal/internal/cli"
	"moneypal/internal/model"
	"moneypal/internal/service"
)

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Spending trends and rollups",
		Long:  `Time-bucketed and tag-based rollups over the ledger.`,
	}

	cmd.AddCommand(monthlyCmd())
	cmd.AddCommand(weeklyCmd())
	cmd.AddCommand(categoriesCmd())
	cmd.AddCommand(kpiCmd())
	cmd.AddCommand(savingsCmd())
	cmd.AddCommand(topTagsCmd())
	cmd.AddCommand(tagsByMonthCmd())
	cmd.AddCommand(tagTrendCmd())

	return cmd
}

// analyticsFilterFlags registers the date-range and search flags shared by
// the analytics subcommands and returns a builder for the filter.
func analyticsFilterFlags(cmd *cobra.Command) func() (service.ExpenseFilter, error) {
	var (
		fromFlag   string
		toFlag     string
		searchFlag string
	)
	cmd.Flags().StringVar(&fromFlag, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "filter by item or category")

	return func() (service.ExpenseFilter, error) {
		start, err := parseDateFlag(fromFlag, "from")
		if err != nil {
			return service.ExpenseFilter{}, err
		}
		end, err := parseDateFlag(toFlag, "to")
		if err != nil {
			return service.ExpenseFilter{}, err
		}
		return service.ExpenseFilter{StartDate: start, EndDate: end, Search: searchFlag}, nil
	}
}

func monthlyCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly spending totals",
	}
	buildFilter := analyticsFilterFlags(cmd)
	cmd.Flags().IntVarP(&limitFlag, "months", "m", 6, "number of recent months with data")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		filter, err := buildFilter()
		if err != nil {
			return err
		}

		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		totals, err := store.MonthlyTotals(ctx, limitFlag, filter)
		if err != nil {
			return err
		}
		if len(totals) == 0 {
			fmt.Println(cli.InfoStyle.Render("No expenses recorded yet."))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "MONTH\tTOTAL")
		for _, t := range totals {
			fmt.Fprintf(w, "%s\t%s\n", cli.FormatYearMonth(t.Month), model.FormatCents(t.TotalCents))
		}
		return nil
	}
	return cmd
}

func weeklyCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Weekly spending totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.WeeklyTotals(ctx, limitFlag)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "WEEK\tTOTAL")
			for _, t := range totals {
				fmt.Fprintf(w, "%s\t%s\n", cli.FormatYearWeek(t.Week), model.FormatCents(t.TotalCents))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "weeks", "w", 10, "number of recent weeks with data")
	return cmd
}

func categoriesCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Monthly spending by category",
	}
	buildFilter := analyticsFilterFlags(cmd)
	cmd.Flags().IntVarP(&limitFlag, "months", "m", 6, "number of recent months with data")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		filter, err := buildFilter()
		if err != nil {
			return err
		}

		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		totals, err := store.MonthlyCategoryTotals(ctx, limitFlag, filter)
		if err != nil {
			return err
		}
		if len(totals) == 0 {
			fmt.Println(cli.InfoStyle.Render("No expenses recorded yet."))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "MONTH\tCATEGORY\tTOTAL")
		for _, t := range totals {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.FormatYearMonth(t.Month), t.Category.Label(), model.FormatCents(t.TotalCents))
		}
		return nil
	}
	return cmd
}

func kpiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Spending KPIs for a filtered set",
	}
	buildFilter := analyticsFilterFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		filter, err := buildFilter()
		if err != nil {
			return err
		}

		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		metrics, err := store.GetKPIMetrics(ctx, filter)
		if err != nil {
			return err
		}
		if metrics.TransactionCount == 0 {
			fmt.Println(cli.InfoStyle.Render("No matching expenses."))
			return nil
		}

		fmt.Println(cli.FormatTitle("Spending KPIs"))
		fmt.Printf("Total spent:     %s\n", model.FormatCents(metrics.TotalCents))
		fmt.Printf("Transactions:    %d\n", metrics.TransactionCount)
		fmt.Printf("Avg/transaction: %s\n", model.FormatCents(metrics.AvgCents))
		if days := spanDays(metrics.FirstDate, metrics.LastDate); days > 0 {
			fmt.Printf("Avg/day:         %s\n", model.FormatCents(metrics.TotalCents/days))
		}
		fmt.Printf("First expense:   %s\n", datePart(metrics.FirstDate))
		fmt.Printf("Last expense:    %s\n", datePart(metrics.LastDate))
		return nil
	}
	return cmd
}

func savingsCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Monthly savings rate",
		Long: `Savings rate per month: (income - spent) / income. Requires a configured
income; with no income there is no meaningful rate.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			points, err := store.MonthlySavingsRate(ctx, limitFlag)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				fmt.Println(cli.FormatWarning("No income configured; set it with 'moneypal settings set'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "MONTH\tRATE\tSPENT\tINCOME")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%.1f%%\t%s\t%s\n",
					cli.FormatYearMonth(p.Month), p.RatePct,
					model.FormatCents(p.SpentCents), model.FormatCents(p.IncomeCents))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "months", "m", 6, "number of recent months with data")
	return cmd
}

func topTagsCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Top tags by total spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.TopTagsBySpending(ctx, limitFlag)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println(cli.InfoStyle.Render("No tagged expenses yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "TAG\tTOTAL\tTRANSACTIONS")
			for _, t := range totals {
				fmt.Fprintf(w, "%s\t%s\t%d\n", t.Name, model.FormatCents(t.TotalCents), t.TransactionCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 10, "number of tags")
	return cmd
}

func tagsByMonthCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "tags-monthly",
		Short: "Monthly spending per tag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.TagSpendingByMonth(ctx, limitFlag)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println(cli.InfoStyle.Render("No tagged expenses yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "MONTH\tTAG\tTOTAL")
			for _, t := range totals {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					cli.FormatYearMonth(t.Month), t.Name, model.FormatCents(t.TotalCents))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "months", "m", 6, "number of recent months with data")
	return cmd
}

func tagTrendCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "tag <name>",
		Short: "Monthly spending for one tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.TagSpendingOverTime(ctx, args[0], limitFlag)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No expenses tagged %q.", args[0])))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "MONTH\tTOTAL")
			for _, t := range totals {
				fmt.Fprintf(w, "%s\t%s\n", cli.FormatYearMonth(t.Month), model.FormatCents(t.TotalCents))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "months", "m", 12, "number of recent months with data")
	return cmd
}

// datePart trims a stored timestamp to its date.
func datePart(stored string) string {
	if len(stored) >= 10 {
		return stored[:10]
	}
	return stored
}

// spanDays counts the days covered by the first and last expense dates,
// inclusive on both ends. Zero when either date is missing.
func spanDays(first, last string) int64 {
	start, err := time.Parse("2006-01-02", datePart(first))
	if err != nil {
		return 0
	}
	end, err := time.Parse("2006-01-02", datePart(last))
	if err != nil {
		return 0
	}
	return int64(end.Sub(start).Hours()/24) + 1
}
