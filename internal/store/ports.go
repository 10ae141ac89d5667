// Package store defines the persistence ports the ledger service depends on.
package store

import (
	"context"

	"spendwise/internal/core"
)

// Ports for outbound adapters.
type (
	// Collection holds an ordered list of records. Update applies fn to the
	// current list and swaps in the result atomically; if fn fails nothing
	// changes.
	Collection[T any] interface {
		List(ctx context.Context) ([]T, error)
		Update(ctx context.Context, fn func([]T) ([]T, error)) error
	}

	ExpenseStore       = Collection[core.PersonalExpense]
	FriendPaymentStore = Collection[core.FriendPayment]
	GroupPaymentStore  = Collection[core.GroupPayment]

	// SettingsStore exposes one collection per reference list.
	SettingsStore interface {
		Settings(kind core.ListKind) (Collection[core.SettingsItem], error)
	}

	// ActivityLog keeps the ledger activity feed, newest first.
	ActivityLog interface {
		Record(ctx context.Context, a core.Activity) error
		Recent(ctx context.Context, limit int) ([]core.Activity, error)
	}

	// Ledger bundles every store the service needs.
	Ledger interface {
		Expenses() ExpenseStore
		FriendPayments() FriendPaymentStore
		Groups() GroupPaymentStore
		SettingsStore
		Activity() ActivityLog
	}
)
