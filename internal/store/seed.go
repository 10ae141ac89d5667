package store

import (
	"strconv"

	"spendwise/internal/core"
)

func items(names ...string) []core.SettingsItem {
	out := make([]core.SettingsItem, len(names))
	for i, n := range names {
		out[i] = core.SettingsItem{ID: strconv.Itoa(i + 1), Name: n}
	}
	return out
}

// Seed is the initial content of a ledger store.
type Seed struct {
	Expenses     []core.PersonalExpense
	Payments     []core.FriendPayment
	Groups       []core.GroupPayment
	Categories   []core.SettingsItem
	Friends      []core.SettingsItem
	PaymentModes []core.SettingsItem
}

// Items returns the seeded reference list of the given kind.
func (s Seed) Items(kind core.ListKind) []core.SettingsItem {
	switch kind {
	case core.Categories:
		return s.Categories
	case core.Friends:
		return s.Friends
	case core.PaymentModes:
		return s.PaymentModes
	}
	return nil
}

// DemoSeed returns the mock records a fresh ledger starts with.
func DemoSeed() Seed {
	return Seed{
		Expenses: []core.PersonalExpense{
			{
				ID:          "1",
				Category:    "Food",
				PaymentMode: "Credit Card",
				Date:        core.NewDate(2024, 1, 20),
				Description: "Lunch at downtown cafe",
				Amount:      core.Money{Cents: 1550},
			},
			{
				ID:          "2",
				Category:    "Transport",
				PaymentMode: "Debit Card",
				Date:        core.NewDate(2024, 1, 19),
				Description: "Gas station",
				Amount:      core.Money{Cents: 4575},
			},
		},
		Payments: []core.FriendPayment{
			{ID: "1", Direction: core.PaidByMe, Friend: "Alice", Amount: core.Money{Cents: 2500}, Description: "Movie tickets", Date: core.NewDate(2024, 1, 20)},
			{ID: "2", Direction: core.PaidByMe, Friend: "Bob", Amount: core.Money{Cents: 1550}, Description: "Coffee", Date: core.NewDate(2024, 1, 19), Settled: true},
			{ID: "3", Direction: core.PaidForMe, Friend: "Charlie", Amount: core.Money{Cents: 3075}, Description: "Lunch", Date: core.NewDate(2024, 1, 18)},
			{ID: "4", Direction: core.PaidForMe, Friend: "Diana", Amount: core.Money{Cents: 2000}, Description: "Taxi fare", Date: core.NewDate(2024, 1, 17)},
		},
		Groups: []core.GroupPayment{
			{
				ID:          "1",
				Description: "Team dinner",
				TotalAmount: core.Money{Cents: 12000},
				PaidBy:      core.SelfName,
				SplitType:   core.SplitEqual,
				Date:        core.NewDate(2024, 1, 20),
				Participants: []core.Participant{
					{Name: "Alice", Amount: core.Money{Cents: 3000}},
					{Name: "Bob", Amount: core.Money{Cents: 3000}, Settled: true},
					{Name: "Charlie", Amount: core.Money{Cents: 3000}},
					{Name: core.SelfName, Amount: core.Money{Cents: 3000}, IsSelf: true, Settled: true},
				},
			},
		},
		Categories:   items("Food", "Transport", "Entertainment", "Shopping", "Bills", "Healthcare"),
		Friends:      items("Alice", "Bob", "Charlie", "Diana", "Eve"),
		PaymentModes: items("Cash", "Credit Card", "Debit Card", "UPI", "Bank Transfer"),
	}
}
