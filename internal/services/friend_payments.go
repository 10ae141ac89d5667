package services

import (
	"context"
	"fmt"
	"strings"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
	"spendwise/internal/ledger"
)

// ListFriendPayments returns payments in one direction, or all when dir is empty.
func (s *LedgerService) ListFriendPayments(ctx context.Context, dir core.Direction) ([]core.FriendPayment, error) {
	items, err := s.store.FriendPayments().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list friend payments: %w", err)
	}
	if dir == "" {
		return items, nil
	}
	return ledger.FilterDirection(items, dir), nil
}

// Balances returns the pending totals in both directions.
func (s *LedgerService) Balances(ctx context.Context) (core.Balances, error) {
	items, err := s.store.FriendPayments().List(ctx)
	if err != nil {
		return core.Balances{}, fmt.Errorf("list friend payments: %w", err)
	}
	return ledger.FriendBalances(items), nil
}

func (s *LedgerService) AddFriendPayment(ctx context.Context, p core.FriendPayment) (core.FriendPayment, error) {
	p = normalizePayment(p)
	if err := p.Validate(); err != nil {
		return core.FriendPayment{}, s.invalid(amqp.EntityFriendPayment, err)
	}
	p.ID = s.newID()

	err := s.store.FriendPayments().Update(ctx, func(cur []core.FriendPayment) ([]core.FriendPayment, error) {
		return ledger.Prepend(cur, p), nil
	})
	if err != nil {
		return core.FriendPayment{}, fmt.Errorf("save friend payment: %w", err)
	}
	s.mutated(ctx, amqp.EntityFriendPayment, amqp.OpCreated, p.ID, p.Amount, paymentSummary(p))
	return p, nil
}

// UpdateFriendPayment replaces the payment with the given id.
func (s *LedgerService) UpdateFriendPayment(ctx context.Context, id string, p core.FriendPayment) (core.FriendPayment, error) {
	p = normalizePayment(p)
	p.ID = id
	if err := p.Validate(); err != nil {
		return core.FriendPayment{}, s.invalid(amqp.EntityFriendPayment, err)
	}

	err := s.store.FriendPayments().Update(ctx, func(cur []core.FriendPayment) ([]core.FriendPayment, error) {
		return ledger.ReplaceByID(cur, p)
	})
	if err != nil {
		return core.FriendPayment{}, fmt.Errorf("update friend payment %s: %w", id, err)
	}
	s.mutated(ctx, amqp.EntityFriendPayment, amqp.OpUpdated, p.ID, p.Amount, paymentSummary(p))
	return p, nil
}

func (s *LedgerService) DeleteFriendPayment(ctx context.Context, id string) error {
	var removed core.FriendPayment
	err := s.store.FriendPayments().Update(ctx, func(cur []core.FriendPayment) ([]core.FriendPayment, error) {
		removed, _ = ledger.FindByID(cur, id)
		return ledger.RemoveByID(cur, id)
	})
	if err != nil {
		return fmt.Errorf("delete friend payment %s: %w", id, err)
	}
	s.mutated(ctx, amqp.EntityFriendPayment, amqp.OpDeleted, id, removed.Amount, paymentSummary(removed))
	return nil
}

// ToggleFriendPayment flips the settled flag and returns the updated payment.
func (s *LedgerService) ToggleFriendPayment(ctx context.Context, id string) (core.FriendPayment, error) {
	var updated core.FriendPayment
	err := s.store.FriendPayments().Update(ctx, func(cur []core.FriendPayment) ([]core.FriendPayment, error) {
		next, err := ledger.ToggleFriendPayment(cur, id)
		if err != nil {
			return nil, err
		}
		updated, _ = ledger.FindByID(next, id)
		return next, nil
	})
	if err != nil {
		return core.FriendPayment{}, fmt.Errorf("toggle friend payment: %w", err)
	}
	op := amqp.OpUnsettled
	if updated.Settled {
		op = amqp.OpSettled
	}
	s.mutated(ctx, amqp.EntityFriendPayment, op, id, updated.Amount, paymentSummary(updated))
	return updated, nil
}

func normalizePayment(p core.FriendPayment) core.FriendPayment {
	p.Friend = strings.TrimSpace(p.Friend)
	p.Description = strings.TrimSpace(p.Description)
	return p
}

func paymentSummary(p core.FriendPayment) string {
	if p.Direction == core.PaidForMe {
		return p.Friend + " paid for you: " + p.Description
	}
	return "You paid for " + p.Friend + ": " + p.Description
}
