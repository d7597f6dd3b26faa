package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moneypal/internal/cli"
)

func resetCmd() *cobra.Command {
	var confirmFlag string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and zero the settings",
		Long: `Reset permanently deletes every expense and tag and zeroes the budget
configuration. The ledger wipe and the settings reset happen in one
transaction: either both succeed or neither does.

The literal confirmation token RESET is required; anything else is
rejected without touching the database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			confirm := confirmFlag
			if confirm == "" {
				fmt.Print("This permanently deletes all expenses, tags and settings.\nType RESET to confirm: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				confirm = strings.TrimSpace(line)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Reset(ctx, confirm); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("All data deleted and settings reset."))
			return nil
		},
	}

	cmd.Flags().StringVar(&confirmFlag, "confirm", "", `confirmation token (must be "RESET")`)
	return cmd
}
