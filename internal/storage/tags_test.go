package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal/internal/model"
)

func TestTagCaseInsensitiveUniqueness(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Same tag in three casings across three expenses.
	a := mustInsert(t, store, "warehouse run", 5000, model.CategoryGroceries, "2024-03-01", "Costco")
	b := mustInsert(t, store, "gas", 4000, model.CategoryTravel, "2024-03-02", "costco")
	c := mustInsert(t, store, "snacks", 1000, model.CategoryFun, "2024-03-03", "COSTCO")

	names, err := store.AllTagNames(ctx, 0)
	require.NoError(t, err)
	// One tag row survives, keeping the first-seen casing.
	assert.Equal(t, []string{"Costco"}, names)

	for _, id := range []int64{a, b, c} {
		exp, err := store.GetExpense(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, exp)
		assert.Equal(t, []string{"Costco"}, model.TagNameStrings(exp.Tags))
	}
}

func TestTagNonASCIIName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Uppercase letters outside ASCII must not break tag creation.
	id, err := store.InsertExpense(ctx, "espresso", 450, model.CategoryFun,
		mustDate(t, "2024-03-05"), []string{"CAFÉ"})
	require.NoError(t, err)

	exp, err := store.GetExpense(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, []string{"CAFÉ"}, model.TagNameStrings(exp.Tags))

	// Reusing the tag resolves to the existing row.
	mustInsert(t, store, "refill", 300, model.CategoryFun, "2024-03-06", "CAFÉ")

	names, err := store.AllTagNames(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"CAFÉ"}, names)
}

func TestTagDedupeWithinOneExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.InsertExpense(ctx, "dinner", 3000, model.CategoryFun,
		mustDate(t, "2024-03-05"), []string{"Date Night", "date night", "  DATE NIGHT "})
	require.NoError(t, err)

	exp, err := store.GetExpense(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, []string{"Date Night"}, model.TagNameStrings(exp.Tags))
}

func TestAllTagNamesOrdering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mustInsert(t, store, "a", 100, model.CategoryMisc, "2024-03-01", "zebra", "Apple", "mango")

	names, err := store.AllTagNames(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "mango", "zebra"}, names)

	limited, err := store.AllTagNames(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "mango"}, limited)
}

func TestDeleteExpenseKeepsTags(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := mustInsert(t, store, "lunch", 1200, model.CategoryFun, "2024-03-01", "food")
	require.NoError(t, store.DeleteExpense(ctx, id))

	// Tag rows outlive the expenses that referenced them; only the
	// association rows cascade away.
	names, err := store.AllTagNames(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"food"}, names)
}
