package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/viper"

	"moneypal/internal/common"
	"moneypal/internal/config"
	"moneypal/internal/model"
	"moneypal/internal/service"
	"moneypal/internal/storage"
)

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/moneypal/moneypal.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open the database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("could not update the database schema", err)
	}

	return store, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag value.
func parseDateFlag(value, flagName string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flagName, value)
	}
	return &t, nil
}

// printExpenses renders expenses as an aligned table on stdout.
func printExpenses(expenses []model.Expense) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tDATE\tITEM\tCATEGORY\tAMOUNT\tTAGS")
	for _, exp := range expenses {
		tags := ""
		for i, t := range exp.Tags {
			if i > 0 {
				tags += ", "
			}
			tags += t.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			exp.ID,
			exp.OccurredAt.Format("2006-01-02"),
			exp.Note,
			exp.Category.Label(),
			model.FormatCents(exp.AmountCents),
			tags)
	}
}
