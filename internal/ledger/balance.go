package ledger

import (
	"strings"

	"spendwise/internal/core"
)

// PendingTotal sums unsettled payments in one direction.
func PendingTotal(payments []core.FriendPayment, dir core.Direction) core.Money {
	var sum int64
	for _, p := range payments {
		if p.Direction == dir && !p.Settled {
			sum += p.Amount.Cents
		}
	}
	return core.Money{Cents: sum}
}

// FriendBalances returns both pending directions in one pass.
func FriendBalances(payments []core.FriendPayment) core.Balances {
	var b core.Balances
	for _, p := range payments {
		if p.Settled {
			continue
		}
		switch p.Direction {
		case core.PaidByMe:
			b.OwedToYou.Cents += p.Amount.Cents
		case core.PaidForMe:
			b.YouOwe.Cents += p.Amount.Cents
		}
	}
	return b
}

// PaidBySelf reports whether the user fronted the group payment.
func PaidBySelf(g core.GroupPayment) bool {
	return strings.EqualFold(strings.TrimSpace(g.PaidBy), core.SelfName)
}

// GroupReceivables sums unsettled friend shares of groups the user paid for.
func GroupReceivables(groups []core.GroupPayment) core.Money {
	var sum int64
	for _, g := range groups {
		if !PaidBySelf(g) {
			continue
		}
		for _, p := range g.Participants {
			if !p.IsSelf && !p.Settled {
				sum += p.Amount.Cents
			}
		}
	}
	return core.Money{Cents: sum}
}

// FilterDirection returns the payments in one direction, order preserved.
func FilterDirection(payments []core.FriendPayment, dir core.Direction) []core.FriendPayment {
	out := make([]core.FriendPayment, 0, len(payments))
	for _, p := range payments {
		if p.Direction == dir {
			out = append(out, p)
		}
	}
	return out
}
