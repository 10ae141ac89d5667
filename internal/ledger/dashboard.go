package ledger

import (
	"cmp"
	"slices"

	"spendwise/internal/core"
)

// DefaultRecentLimit is how many recent expenses the dashboard lists.
const DefaultRecentLimit = 5

// DashboardInput is a snapshot of the collections plus the reporting window.
// A zero Year selects every expense.
type DashboardInput struct {
	Expenses    []core.PersonalExpense
	Payments    []core.FriendPayment
	Groups      []core.GroupPayment
	Budget      core.Money
	Year        int
	Month       int
	RecentLimit int
}

// Summarize derives the dashboard figures.
func Summarize(in DashboardInput) core.Dashboard {
	expenses := in.Expenses
	if in.Year != 0 {
		expenses = InMonth(expenses, in.Year, in.Month)
	}
	total := TotalExpenses(expenses)
	usage := BudgetUsage(total, in.Budget)
	friends := FriendBalances(in.Payments)
	receivables := GroupReceivables(in.Groups)

	limit := in.RecentLimit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return core.Dashboard{
		TotalExpenses:    total,
		MonthlyBudget:    in.Budget,
		UsagePercent:     usage.Percent,
		UsageBar:         usage.Bar(),
		FriendBalances:   friends,
		GroupReceivables: receivables,
		OwedToYou:        friends.OwedToYou.Add(receivables),
		YouOwe:           friends.YouOwe,
		ByCategory:       ByCategory(expenses),
		Recent:           Recent(expenses, limit),
	}
}

// TotalExpenses sums expense amounts.
func TotalExpenses(expenses []core.PersonalExpense) core.Money {
	var sum int64
	for _, e := range expenses {
		sum += e.Amount.Cents
	}
	return core.Money{Cents: sum}
}

// InMonth keeps the expenses dated in the given month.
func InMonth(expenses []core.PersonalExpense, year, month int) []core.PersonalExpense {
	out := make([]core.PersonalExpense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.InMonth(year, month) {
			out = append(out, e)
		}
	}
	return out
}

// ByCategory totals expenses per category, largest first.
func ByCategory(expenses []core.PersonalExpense) []core.CategoryAmount {
	idx := make(map[string]int)
	var out []core.CategoryAmount
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, core.CategoryAmount{Name: e.Category})
		}
		out[i].Amount.Cents += e.Amount.Cents
	}
	slices.SortStableFunc(out, func(a, b core.CategoryAmount) int {
		if c := cmp.Compare(b.Amount.Cents, a.Amount.Cents); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Recent returns up to n expenses, newest date first. Expenses sharing a
// date keep their collection order.
func Recent(expenses []core.PersonalExpense, n int) []core.PersonalExpense {
	out := slices.Clone(expenses)
	slices.SortStableFunc(out, func(a, b core.PersonalExpense) int {
		return b.Date.Compare(a.Date.Time)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
