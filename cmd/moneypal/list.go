package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneypal/internal/cli"
	"moneypal/internal/service"
)

func listCmd() *cobra.Command {
	var (
		searchFlag string
		fromFlag   string
		toFlag     string
		tagFlag    string
		limitFlag  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
		Long: `List expenses, most recent first. Search matches item names, categories
and tag names; --tag filters on an exact tag.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, err := parseDateFlag(fromFlag, "from")
			if err != nil {
				return err
			}
			end, err := parseDateFlag(toFlag, "to")
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{
				Search:    searchFlag,
				StartDate: start,
				EndDate:   end,
				Tag:       tagFlag,
				Limit:     limitFlag,
			})
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found. Use 'moneypal add' to record one."))
				return nil
			}

			printExpenses(expenses)
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "search item, category and tag names")
	cmd.Flags().StringVar(&fromFlag, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tagFlag, "tag", "", "filter by exact tag name")
	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 50, "maximum number of expenses")

	return cmd
}

func tagsCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List all tag names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.AllTagNames(ctx, limitFlag)
			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			if len(names) == 0 {
				fmt.Println(cli.InfoStyle.Render("No tags yet."))
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 500, "maximum number of tags")
	return cmd
}
