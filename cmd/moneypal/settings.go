package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"moneypal/internal/budget"
	"moneypal/internal/cli"
	"moneypal/internal/model"
	"moneypal/internal/storage"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change the budget configuration",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show income, savings goal and category budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			alloc := budget.AllocationFromSettings(settings)

			fmt.Printf("Income 1:        %s\n", model.FormatCents(settings.Income1Cents))
			fmt.Printf("Income 2:        %s\n", model.FormatCents(settings.Income2Cents))
			fmt.Printf("Savings goal:    %.1f%%\n", settings.SavingGoalPct)
			fmt.Printf("Spending budget: %s\n\n", model.FormatCents(alloc.MaxBudgetCents))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "CATEGORY\tBUDGET")
			for _, cat := range model.Categories() {
				fmt.Fprintf(w, "%s\t%s\n", cat.Label(), model.FormatCents(settings.BudgetFor(cat)))
			}
			return nil
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var (
		income1Flag   string
		income2Flag   string
		goalFlag      float64
		funFlag       string
		groceriesFlag string
		travelFlag    string
		homeFlag      string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the budget configuration",
		Long: `Save income, savings goal and the four category budgets. The misc budget
is never set directly: it absorbs whatever remains of the spending
budget. A save that over-allocates the budget is refused.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// Start from the persisted state so omitted flags keep their values.
			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			parseAmount := func(name, value string, target *int64) error {
				if !cmd.Flags().Changed(name) {
					return nil
				}
				cents, err := parseAmountValue(value)
				if err != nil {
					return fmt.Errorf("invalid --%s %q: %w", name, value, err)
				}
				*target = cents
				return nil
			}

			if err := parseAmount("income1", income1Flag, &settings.Income1Cents); err != nil {
				return err
			}
			if err := parseAmount("income2", income2Flag, &settings.Income2Cents); err != nil {
				return err
			}
			if cmd.Flags().Changed("goal") {
				settings.SavingGoalPct = goalFlag
			}
			if err := parseAmount("fun", funFlag, &settings.BudgetFunCents); err != nil {
				return err
			}
			if err := parseAmount("groceries", groceriesFlag, &settings.BudgetGroceriesCents); err != nil {
				return err
			}
			if err := parseAmount("travel", travelFlag, &settings.BudgetTravelCents); err != nil {
				return err
			}
			if err := parseAmount("home", homeFlag, &settings.BudgetHomeCents); err != nil {
				return err
			}

			if err := store.SaveSettings(ctx, settings); err != nil {
				if errors.Is(err, storage.ErrValidation) {
					return fmt.Errorf("%s", cli.FormatError(err.Error()))
				}
				return err
			}

			saved, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved. Misc budget is now %s.",
				model.FormatCents(saved.BudgetMiscCents))))
			return nil
		},
	}

	cmd.Flags().StringVar(&income1Flag, "income1", "", "first income in major units")
	cmd.Flags().StringVar(&income2Flag, "income2", "", "second income in major units")
	cmd.Flags().Float64Var(&goalFlag, "goal", 0, "savings goal percentage [0-100]")
	cmd.Flags().StringVar(&funFlag, "fun", "", "fun budget in major units")
	cmd.Flags().StringVar(&groceriesFlag, "groceries", "", "groceries budget in major units")
	cmd.Flags().StringVar(&travelFlag, "travel", "", "travel budget in major units")
	cmd.Flags().StringVar(&homeFlag, "home", "", "home budget in major units")

	return cmd
}

// parseAmountValue parses a major-unit flag value into cents. Unlike
// expense amounts, settings values may be zero so a budget or income can
// be cleared; "0", "0.0" and "0,00" all count.
func parseAmountValue(value string) (int64, error) {
	cents, err := model.ParseCents(value)
	if err == nil {
		return cents, nil
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if f, ferr := strconv.ParseFloat(normalized, 64); ferr == nil && f == 0 {
		return 0, nil
	}
	return 0, err
}
