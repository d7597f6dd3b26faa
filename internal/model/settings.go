package model

// Settings is the singleton budget configuration: two income sources, a
// savings-goal percentage, and the per-category budget allocations. All
// monetary fields are cents; SavingGoalPct is a percentage in [0, 100].
type Settings struct {
	Income1Cents         int64
	Income2Cents         int64
	SavingGoalPct        float64
	BudgetFunCents       int64
	BudgetGroceriesCents int64
	BudgetTravelCents    int64
	BudgetHomeCents      int64
	BudgetMiscCents      int64
}

// TotalIncomeCents is the combined monthly income.
func (s Settings) TotalIncomeCents() int64 {
	return s.Income1Cents + s.Income2Cents
}

// BudgetFor returns the allocated budget for a category.
func (s Settings) BudgetFor(cat Category) int64 {
	switch cat {
	case CategoryFun:
		return s.BudgetFunCents
	case CategoryGroceries:
		return s.BudgetGroceriesCents
	case CategoryTravel:
		return s.BudgetTravelCents
	case CategoryHome:
		return s.BudgetHomeCents
	case CategoryMisc:
		return s.BudgetMiscCents
	default:
		return 0
	}
}
