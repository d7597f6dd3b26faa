package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moneypal/internal/cli"
	"moneypal/internal/model"
)

func addCmd() *cobra.Command {
	var (
		amountFlag   string
		categoryFlag string
		dateFlag     string
		tagsFlag     []string
	)

	cmd := &cobra.Command{
		Use:   "add <item>",
		Short: "Record a new expense",
		Long: `Record a new expense with an amount, category, date and optional tags.

New tags are created on first use; tag names are deduplicated
case-insensitively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amountCents, err := model.ParseCents(amountFlag)
			if err != nil {
				return fmt.Errorf("invalid --amount %q: %w", amountFlag, err)
			}

			category, err := model.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}

			occurredOn := time.Now()
			if dateFlag != "" {
				parsed, err := parseDateFlag(dateFlag, "date")
				if err != nil {
					return err
				}
				occurredOn = *parsed
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.InsertExpense(ctx, args[0], amountCents, category, occurredOn, tagsFlag)
			if err != nil {
				return fmt.Errorf("failed to record expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s for %s (id %d)",
				model.FormatCents(amountCents), category.Label(), id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountFlag, "amount", "a", "", "amount in major units, e.g. 12.34 (required)")
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "misc", "category: fun, groceries, travel, home, misc")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "date the expense occurred (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVarP(&tagsFlag, "tags", "t", nil, "comma-separated tags")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
