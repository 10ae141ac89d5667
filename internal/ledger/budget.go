// Package ledger derives summary figures from the ledger collections.
//
// Every function here is pure: inputs are read, never mutated, and updated
// collections are returned as fresh slices.
package ledger

import (
	"fmt"

	"spendwise/internal/core"
)

// DefaultMonthlyBudget is used when no budget is configured.
var DefaultMonthlyBudget = core.Money{Cents: 300000}

// Usage is the share of the monthly budget consumed by expenses.
type Usage struct {
	Total   core.Money
	Budget  core.Money
	Percent float64 // raw, not clamped
}

// BudgetUsage computes total/budget*100. A non-positive budget yields 0.
func BudgetUsage(total, budget core.Money) Usage {
	u := Usage{Total: total, Budget: budget}
	if budget.Cents <= 0 {
		return u
	}
	u.Percent = float64(total.Cents) / float64(budget.Cents) * 100
	return u
}

// Bar clamps the percentage to [0,100] for progress rendering.
func (u Usage) Bar() float64 {
	switch {
	case u.Percent < 0:
		return 0
	case u.Percent > 100:
		return 100
	default:
		return u.Percent
	}
}

// Remaining is the unspent budget; negative when over budget.
func (u Usage) Remaining() core.Money {
	return core.Money{Cents: u.Budget.Cents - u.Total.Cents}
}

func (u Usage) String() string {
	return fmt.Sprintf("%.1f%% of %s used", u.Percent, u.Budget.Display())
}
