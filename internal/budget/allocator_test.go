package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal/internal/model"
)

func TestSpendingBudget(t *testing.T) {
	tests := []struct {
		name    string
		income1 int64
		income2 int64
		pct     float64
		want    int64
	}{
		{name: "no savings goal", income1: 300000, income2: 200000, pct: 0, want: 500000},
		{name: "twenty percent goal", income1: 300000, income2: 200000, pct: 20, want: 400000},
		{name: "full savings goal", income1: 300000, income2: 0, pct: 100, want: 0},
		{name: "goal above hundred clamps to zero", income1: 100000, income2: 0, pct: 150, want: 0},
		{name: "zero income", income1: 0, income2: 0, pct: 50, want: 0},
		{name: "rounds to nearest cent", income1: 10001, income2: 0, pct: 50, want: 5001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpendingBudget(tt.income1, tt.income2, tt.pct)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}

func TestMiscAllocation(t *testing.T) {
	tests := []struct {
		name      string
		maxBudget int64
		fun       int64
		groceries int64
		travel    int64
		home      int64
		want      int64
	}{
		{name: "remainder", maxBudget: 100000, fun: 20000, groceries: 30000, travel: 10000, home: 25000, want: 15000},
		{name: "exact fit leaves zero", maxBudget: 100000, fun: 25000, groceries: 25000, travel: 25000, home: 25000, want: 0},
		{name: "over-allocation floors at zero", maxBudget: 100000, fun: 60000, groceries: 60000, travel: 0, home: 0, want: 0},
		{name: "nothing allocated", maxBudget: 100000, want: 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MiscAllocation(tt.maxBudget, tt.fun, tt.groceries, tt.travel, tt.home)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocationClosesTheBudget(t *testing.T) {
	// Whenever the four categories fit, the five sum to exactly maxBudget.
	alloc := Allocation{
		MaxBudgetCents: 400000,
		FunCents:       50000,
		GroceriesCents: 120000,
		TravelCents:    30000,
		HomeCents:      150000,
	}
	require.True(t, alloc.Valid())
	assert.Equal(t, alloc.MaxBudgetCents, alloc.AllocatedCents()+alloc.MiscCents())
}

func TestAllocationOverBudgetFlagged(t *testing.T) {
	alloc := Allocation{
		MaxBudgetCents: 100000,
		FunCents:       80000,
		GroceriesCents: 80000,
	}
	assert.False(t, alloc.Valid())
	// Misc is forced to zero rather than going negative.
	assert.Equal(t, int64(0), alloc.MiscCents())
}

func TestAllocationFromSettings(t *testing.T) {
	settings := model.Settings{
		Income1Cents:         300000,
		Income2Cents:         200000,
		SavingGoalPct:        20,
		BudgetFunCents:       50000,
		BudgetGroceriesCents: 100000,
		BudgetTravelCents:    50000,
		BudgetHomeCents:      150000,
	}

	alloc := AllocationFromSettings(settings)
	assert.Equal(t, int64(400000), alloc.MaxBudgetCents)
	assert.True(t, alloc.Valid())
	assert.Equal(t, int64(50000), alloc.MiscCents())
}
