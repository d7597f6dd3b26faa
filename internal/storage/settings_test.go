package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal/internal/model"
	"moneypal/internal/service"
)

func TestGetSettingsDefaults(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	settings, err := store.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Settings{}, settings)
}

func TestSaveSettingsDerivesMisc(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	err := store.SaveSettings(ctx, model.Settings{
		Income1Cents:         300000,
		Income2Cents:         200000,
		SavingGoalPct:        20,
		BudgetFunCents:       50000,
		BudgetGroceriesCents: 100000,
		BudgetTravelCents:    30000,
		BudgetHomeCents:      120000,
		// Whatever the caller says about misc is ignored.
		BudgetMiscCents: 999999,
	})
	require.NoError(t, err)

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)

	// Spending budget = 500000 * 0.80 = 400000; misc is the remainder.
	assert.Equal(t, int64(500000), settings.TotalIncomeCents())
	assert.Equal(t, int64(100000), settings.BudgetMiscCents)
}

func TestSaveSettingsRefusesOverAllocation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	good := model.Settings{Income1Cents: 100000, SavingGoalPct: 50, BudgetFunCents: 10000}
	require.NoError(t, store.SaveSettings(ctx, good))

	// 60000 allocated against a 50000 spending budget.
	bad := good
	bad.BudgetFunCents = 60000
	err := store.SaveSettings(ctx, bad)
	assert.ErrorIs(t, err, ErrValidation)

	// The previous settings survived untouched.
	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), settings.BudgetFunCents)
}

func TestSaveSettingsValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name     string
		settings model.Settings
	}{
		{name: "negative income", settings: model.Settings{Income1Cents: -1}},
		{name: "negative budget", settings: model.Settings{Income1Cents: 100000, BudgetFunCents: -500}},
		{name: "goal below range", settings: model.Settings{Income1Cents: 100000, SavingGoalPct: -1}},
		{name: "goal above range", settings: model.Settings{Income1Cents: 100000, SavingGoalPct: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveSettings(ctx, tt.settings)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestResetRequiresExactToken(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mustInsert(t, store, "lunch", 1200, model.CategoryFun, "2024-03-01", "food")
	require.NoError(t, store.SaveSettings(ctx, model.Settings{Income1Cents: 100000}))

	for _, token := range []string{"", "reset", "Reset", "yes", "RESET!"} {
		err := store.Reset(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidConfirmation, "token %q", token)
	}

	// Nothing was deleted by the rejected attempts.
	expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}

func TestResetWipesEverything(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mustInsert(t, store, "lunch", 1200, model.CategoryFun, "2024-03-01", "food")
	mustInsert(t, store, "gas", 4500, model.CategoryTravel, "2024-03-02", "car")
	require.NoError(t, store.SaveSettings(ctx, model.Settings{
		Income1Cents: 300000, SavingGoalPct: 10, BudgetFunCents: 20000,
	}))

	require.NoError(t, store.Reset(ctx, "RESET"))

	expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, expenses)

	names, err := store.AllTagNames(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, names)

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Settings{}, settings)

	// The store remains usable after a reset.
	mustInsert(t, store, "fresh start", 500, model.CategoryMisc, "2024-03-03")
	expenses, err = store.ListExpenses(ctx, service.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}
