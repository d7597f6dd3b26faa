package budget

import "moneypal/internal/model"

// CategoryStatus pairs a category's allocated budget with what has been
// spent against it this month.
type CategoryStatus struct {
	Category       model.Category
	BudgetCents    int64
	SpentCents     int64
	RemainingCents int64
}

// Summary is the dashboard view of the current month: total budget, total
// spent, and the per-category breakdown in canonical order.
type Summary struct {
	Categories          []CategoryStatus
	SpendingBudgetCents int64
	SpentCents          int64
	RemainingCents      int64
	SavingGoalPct       float64
	TotalIncomeCents    int64
}

// BuildSummary assembles the dashboard summary from persisted settings and
// the month's spending figures. Categories missing from spentByCategory
// count as zero.
func BuildSummary(s model.Settings, spentByCategory map[model.Category]int64, spentTotalCents int64) Summary {
	budgetCents := SpendingBudget(s.Income1Cents, s.Income2Cents, s.SavingGoalPct)

	remaining := budgetCents - spentTotalCents
	if remaining < 0 {
		remaining = 0
	}

	categories := make([]CategoryStatus, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		spent := spentByCategory[cat]
		allocated := s.BudgetFor(cat)
		left := allocated - spent
		if left < 0 {
			left = 0
		}
		categories = append(categories, CategoryStatus{
			Category:       cat,
			BudgetCents:    allocated,
			SpentCents:     spent,
			RemainingCents: left,
		})
	}

	return Summary{
		Categories:          categories,
		SpendingBudgetCents: budgetCents,
		SpentCents:          spentTotalCents,
		RemainingCents:      remaining,
		SavingGoalPct:       s.SavingGoalPct,
		TotalIncomeCents:    s.TotalIncomeCents(),
	}
}
