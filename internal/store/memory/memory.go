// Package memory is the default, process-local ledger store.
package memory

import (
	"context"
	"sync"

	"spendwise/internal/core"
	"spendwise/internal/store"
)

// maxActivity bounds the in-memory activity feed.
const maxActivity = 200

// list is a mutex-guarded collection replaced wholesale on every update.
type list[T any] struct {
	mu    sync.RWMutex
	items []T
}

func newList[T any](items []T) *list[T] {
	return &list[T]{items: append([]T(nil), items...)}
}

func (l *list[T]) List(_ context.Context) ([]T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T(nil), l.items...), nil
}

func (l *list[T]) Update(_ context.Context, fn func([]T) ([]T, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next, err := fn(append([]T(nil), l.items...))
	if err != nil {
		return err
	}
	l.items = next
	return nil
}

type Store struct {
	expenses *list[core.PersonalExpense]
	payments *list[core.FriendPayment]
	groups   *list[core.GroupPayment]
	settings map[core.ListKind]*list[core.SettingsItem]

	actMu    sync.Mutex
	activity []core.Activity
}

// New returns a store holding seed.
func New(seed store.Seed) *Store {
	return &Store{
		expenses: newList(seed.Expenses),
		payments: newList(seed.Payments),
		groups:   newList(seed.Groups),
		settings: map[core.ListKind]*list[core.SettingsItem]{
			core.Categories:   newList(seed.Items(core.Categories)),
			core.Friends:      newList(seed.Items(core.Friends)),
			core.PaymentModes: newList(seed.Items(core.PaymentModes)),
		},
	}
}

// NewSeeded returns a store holding the demo records.
func NewSeeded() *Store {
	return New(store.DemoSeed())
}

func (s *Store) Expenses() store.ExpenseStore             { return s.expenses }
func (s *Store) FriendPayments() store.FriendPaymentStore { return s.payments }
func (s *Store) Groups() store.GroupPaymentStore          { return groupList{s.groups} }
func (s *Store) Activity() store.ActivityLog              { return s }

func (s *Store) Settings(kind core.ListKind) (store.Collection[core.SettingsItem], error) {
	l, ok := s.settings[kind]
	if !ok {
		return nil, core.ErrUnknownListKind
	}
	return l, nil
}

// Record prepends a to the activity feed.
func (s *Store) Record(_ context.Context, a core.Activity) error {
	s.actMu.Lock()
	defer s.actMu.Unlock()
	s.activity = append([]core.Activity{a}, s.activity...)
	if len(s.activity) > maxActivity {
		s.activity = s.activity[:maxActivity]
	}
	return nil
}

// Recent returns up to limit activity entries, newest first.
func (s *Store) Recent(_ context.Context, limit int) ([]core.Activity, error) {
	s.actMu.Lock()
	defer s.actMu.Unlock()
	n := len(s.activity)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]core.Activity(nil), s.activity[:n]...), nil
}

// groupList deep-copies participants so callers never share them with the store.
type groupList struct{ l *list[core.GroupPayment] }

func (g groupList) List(ctx context.Context) ([]core.GroupPayment, error) {
	items, err := g.l.List(ctx)
	if err != nil {
		return nil, err
	}
	return cloneGroups(items), nil
}

func (g groupList) Update(ctx context.Context, fn func([]core.GroupPayment) ([]core.GroupPayment, error)) error {
	return g.l.Update(ctx, func(cur []core.GroupPayment) ([]core.GroupPayment, error) {
		next, err := fn(cloneGroups(cur))
		if err != nil {
			return nil, err
		}
		return cloneGroups(next), nil
	})
}

func cloneGroups(in []core.GroupPayment) []core.GroupPayment {
	out := make([]core.GroupPayment, len(in))
	for i, g := range in {
		out[i] = g.Clone()
	}
	return out
}

var _ store.Ledger = (*Store)(nil)
