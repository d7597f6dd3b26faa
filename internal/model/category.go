package model

import (
	"fmt"
	"strings"
)

// Category is one of the five fixed spending categories. The raw value is
// the key stored in the database and exported to CSV; display labels are
// separate. The set is closed: anything outside it is rejected at the edge
// instead of being silently folded into Misc.
type Category string

const (
	// CategoryFun covers entertainment and discretionary spending.
	CategoryFun Category = "Fun"
	// CategoryGroceries covers food and household supplies.
	CategoryGroceries Category = "groceris"
	// CategoryTravel covers trips and transportation.
	CategoryTravel Category = "travel"
	// CategoryHome covers rent, utilities and home expenses.
	CategoryHome Category = "home exp"
	// CategoryMisc absorbs everything else; its budget is auto-balanced.
	CategoryMisc Category = "misc"
)

// Categories returns all categories in canonical display order.
func Categories() []Category {
	return []Category{
		CategoryFun,
		CategoryGroceries,
		CategoryTravel,
		CategoryHome,
		CategoryMisc,
	}
}

var categoryLabels = map[Category]string{
	CategoryFun:       "Fun",
	CategoryGroceries: "Groceries",
	CategoryTravel:    "Travel",
	CategoryHome:      "Home",
	CategoryMisc:      "Misc",
}

// Label returns the human-facing name for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether the category belongs to the fixed set.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory resolves a user-supplied string to a Category. It accepts
// both the stored key and the display label, case-insensitively.
func ParseCategory(s string) (Category, error) {
	needle := strings.TrimSpace(s)
	for cat, label := range categoryLabels {
		if strings.EqualFold(needle, string(cat)) || strings.EqualFold(needle, label) {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (valid: fun, groceries, travel, home, misc)", s)
}
