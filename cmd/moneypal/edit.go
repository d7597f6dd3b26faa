package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moneypal/internal/cli"
	"moneypal/internal/model"
)

func editCmd() *cobra.Command {
	var (
		itemFlag     string
		amountFlag   string
		categoryFlag string
		dateFlag     string
		tagsFlag     []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace an expense",
		Long: `Replace every field of an existing expense. Flags that are omitted fall
back to the stored value, except tags: passing --tags replaces the whole
tag set with exactly what you give.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			existing, err := store.GetExpense(ctx, id)
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("expense %d not found", id)
			}

			note := existing.Note
			if cmd.Flags().Changed("item") {
				note = itemFlag
			}

			amountCents := existing.AmountCents
			if cmd.Flags().Changed("amount") {
				amountCents, err = model.ParseCents(amountFlag)
				if err != nil {
					return fmt.Errorf("invalid --amount %q: %w", amountFlag, err)
				}
			}

			category := existing.Category
			if cmd.Flags().Changed("category") {
				category, err = model.ParseCategory(categoryFlag)
				if err != nil {
					return err
				}
			}

			occurredOn := existing.OccurredAt
			if cmd.Flags().Changed("date") {
				parsed, err := parseDateFlag(dateFlag, "date")
				if err != nil {
					return err
				}
				occurredOn = *parsed
			}

			tags := model.TagNameStrings(existing.Tags)
			if cmd.Flags().Changed("tags") {
				tags = tagsFlag
			}

			if err := store.UpdateExpense(ctx, id, note, amountCents, category, occurredOn, tags); err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated expense %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&itemFlag, "item", "i", "", "item name")
	cmd.Flags().StringVarP(&amountFlag, "amount", "a", "", "amount in major units")
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "category: fun, groceries, travel, home, misc")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "date the expense occurred (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&tagsFlag, "tags", "t", nil, "comma-separated tags (replaces the full set)")

	return cmd
}

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Long:  `Delete an expense permanently. Deleting an id that does not exist is a no-op.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q", args[0])
			}

			if !force {
				fmt.Printf("Delete expense %d permanently? [y/N]: ", id)
				var response string
				if _, err := fmt.Scanln(&response); err != nil || (response != "y" && response != "Y") {
					fmt.Println("Canceled.")
					return nil
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteExpense(ctx, id); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
