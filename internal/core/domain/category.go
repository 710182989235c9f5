package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker_core/internal/apperrors"
)

// Category classifies a transaction or budget.
type Category string

const (
	Food           Category = "FOOD"
	Transportation Category = "TRANSPORTATION"
	Housing        Category = "HOUSING"
	Utilities      Category = "UTILITIES"
	Healthcare     Category = "HEALTHCARE"
	Entertainment  Category = "ENTERTAINMENT"
	Education      Category = "EDUCATION"
	Shopping       Category = "SHOPPING"
	Travel         Category = "TRAVEL"
	Subscriptions  Category = "SUBSCRIPTIONS"
	Salary         Category = "SALARY"
	Investments    Category = "INVESTMENTS"
	// Other is the catch-all category. Budgets may not target it.
	Other Category = "OTHER"
)

var allCategories = []Category{
	Food, Transportation, Housing, Utilities, Healthcare, Entertainment,
	Education, Shopping, Travel, Subscriptions, Salary, Investments, Other,
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, s)
	}
	return c, nil
}
