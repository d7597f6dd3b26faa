// Package budget contains the pure budget-allocation logic. It operates
// only on values passed in and holds no state, so callers recompute from
// fresh inputs whenever income, the savings goal, or any category value
// changes.
package budget

import (
	"math"

	"moneypal/internal/model"
)

// SpendingBudget derives the monthly discretionary budget in cents from the
// two income sources and the savings-goal percentage:
//
//	(income1 + income2) * (1 - pct/100)
//
// rounded to the nearest cent and clamped at zero, so a goal above 100%
// never produces a negative budget.
func SpendingBudget(income1Cents, income2Cents int64, savingGoalPct float64) int64 {
	total := float64(income1Cents + income2Cents)
	cents := int64(math.Round(total * (1.0 - savingGoalPct/100.0)))
	if cents < 0 {
		return 0
	}
	return cents
}

// MiscAllocation returns the auto-balanced misc budget: whatever remains of
// maxBudget after the four user-settable categories, floored at zero. Misc
// is never set directly; it always absorbs the remainder.
func MiscAllocation(maxBudgetCents, funCents, groceriesCents, travelCents, homeCents int64) int64 {
	rest := maxBudgetCents - (funCents + groceriesCents + travelCents + homeCents)
	if rest < 0 {
		return 0
	}
	return rest
}

// Allocation is a draft split of the spending budget across the four
// user-settable categories. The presentation layer constructs one from its
// live editing state and asks for Misc and validity before saving.
type Allocation struct {
	MaxBudgetCents int64
	FunCents       int64
	GroceriesCents int64
	TravelCents    int64
	HomeCents      int64
}

// AllocatedCents is the sum of the four user-settable category values.
func (a Allocation) AllocatedCents() int64 {
	return a.FunCents + a.GroceriesCents + a.TravelCents + a.HomeCents
}

// MiscCents is the auto-balanced remainder for this draft.
func (a Allocation) MiscCents() int64 {
	return MiscAllocation(a.MaxBudgetCents, a.FunCents, a.GroceriesCents, a.TravelCents, a.HomeCents)
}

// Valid reports whether the four categories fit within the budget. An
// over-allocated draft is flagged rather than clamped; persisting it must
// be refused by the settings store.
func (a Allocation) Valid() bool {
	return a.AllocatedCents() <= a.MaxBudgetCents
}

// AllocationFromSettings builds the draft allocation implied by persisted
// settings, with the budget recomputed from income and the savings goal.
func AllocationFromSettings(s model.Settings) Allocation {
	return Allocation{
		MaxBudgetCents: SpendingBudget(s.Income1Cents, s.Income2Cents, s.SavingGoalPct),
		FunCents:       s.BudgetFunCents,
		GroceriesCents: s.BudgetGroceriesCents,
		TravelCents:    s.BudgetTravelCents,
		HomeCents:      s.BudgetHomeCents,
	}
}
