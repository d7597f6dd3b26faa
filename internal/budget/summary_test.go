package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal/internal/model"
)

func TestBuildSummary(t *testing.T) {
	settings := model.Settings{
		Income1Cents:         300000,
		Income2Cents:         200000,
		SavingGoalPct:        20,
		BudgetFunCents:       50000,
		BudgetGroceriesCents: 100000,
		BudgetTravelCents:    50000,
		BudgetHomeCents:      150000,
		BudgetMiscCents:      50000,
	}
	spent := map[model.Category]int64{
		model.CategoryGroceries: 40000,
		model.CategoryFun:       60000,
	}

	summary := BuildSummary(settings, spent, 100000)

	assert.Equal(t, int64(400000), summary.SpendingBudgetCents)
	assert.Equal(t, int64(100000), summary.SpentCents)
	assert.Equal(t, int64(300000), summary.RemainingCents)
	assert.Equal(t, int64(500000), summary.TotalIncomeCents)
	require.Len(t, summary.Categories, 5)

	byCat := make(map[model.Category]CategoryStatus)
	for _, cs := range summary.Categories {
		byCat[cs.Category] = cs
	}

	assert.Equal(t, int64(60000), byCat[model.CategoryGroceries].RemainingCents)
	// Overspent categories floor at zero remaining instead of going negative.
	assert.Equal(t, int64(60000), byCat[model.CategoryFun].SpentCents)
	assert.Equal(t, int64(0), byCat[model.CategoryFun].RemainingCents)
	// Categories with no spending report zero, not absence.
	assert.Equal(t, int64(0), byCat[model.CategoryTravel].SpentCents)
	assert.Equal(t, int64(50000), byCat[model.CategoryTravel].RemainingCents)
}

func TestBuildSummaryOverspentMonth(t *testing.T) {
	settings := model.Settings{Income1Cents: 100000}

	summary := BuildSummary(settings, nil, 150000)

	assert.Equal(t, int64(100000), summary.SpendingBudgetCents)
	assert.Equal(t, int64(0), summary.RemainingCents)
}
