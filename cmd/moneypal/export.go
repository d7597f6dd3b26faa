package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"moneypal/internal/cli"
	"moneypal/internal/export"
	"moneypal/internal/service"
)

func exportCmd() *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all expenses as CSV",
		Long:  `Export every expense as CSV with columns date, item, category, price.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{Limit: 100000})
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}

			out := os.Stdout
			if outputFlag != "" {
				f, err := os.Create(outputFlag)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outputFlag, err)
				}
				defer f.Close()
				out = f
			}

			if err := export.WriteCSV(out, expenses); err != nil {
				return err
			}

			if outputFlag != "" {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(expenses), outputFlag)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write to file instead of stdout")
	return cmd
}
