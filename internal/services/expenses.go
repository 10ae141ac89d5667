package services

import (
	"context"
	"fmt"
	"strings"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
	"spendwise/internal/ledger"
)

func (s *LedgerService) ListExpenses(ctx context.Context) ([]core.PersonalExpense, error) {
	items, err := s.store.Expenses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return items, nil
}

// AddExpense validates e, assigns it an id and stores it first in the list.
func (s *LedgerService) AddExpense(ctx context.Context, e core.PersonalExpense) (core.PersonalExpense, error) {
	e = normalizeExpense(e)
	if err := e.Validate(); err != nil {
		return core.PersonalExpense{}, s.invalid(amqp.EntityExpense, err)
	}
	e.ID = s.newID()

	err := s.store.Expenses().Update(ctx, func(cur []core.PersonalExpense) ([]core.PersonalExpense, error) {
		return ledger.Prepend(cur, e), nil
	})
	if err != nil {
		return core.PersonalExpense{}, fmt.Errorf("save expense: %w", err)
	}
	s.mutated(ctx, amqp.EntityExpense, amqp.OpCreated, e.ID, e.Amount, e.Category+": "+e.Description)
	return e, nil
}

// UpdateExpense replaces the expense with the given id.
func (s *LedgerService) UpdateExpense(ctx context.Context, id string, e core.PersonalExpense) (core.PersonalExpense, error) {
	e = normalizeExpense(e)
	e.ID = id
	if err := e.Validate(); err != nil {
		return core.PersonalExpense{}, s.invalid(amqp.EntityExpense, err)
	}

	err := s.store.Expenses().Update(ctx, func(cur []core.PersonalExpense) ([]core.PersonalExpense, error) {
		return ledger.ReplaceByID(cur, e)
	})
	if err != nil {
		return core.PersonalExpense{}, fmt.Errorf("update expense %s: %w", id, err)
	}
	s.mutated(ctx, amqp.EntityExpense, amqp.OpUpdated, e.ID, e.Amount, e.Category+": "+e.Description)
	return e, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id string) error {
	var removed core.PersonalExpense
	err := s.store.Expenses().Update(ctx, func(cur []core.PersonalExpense) ([]core.PersonalExpense, error) {
		removed, _ = ledger.FindByID(cur, id)
		return ledger.RemoveByID(cur, id)
	})
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	s.mutated(ctx, amqp.EntityExpense, amqp.OpDeleted, id, removed.Amount, removed.Description)
	return nil
}

func normalizeExpense(e core.PersonalExpense) core.PersonalExpense {
	e.Category = strings.TrimSpace(e.Category)
	e.PaymentMode = strings.TrimSpace(e.PaymentMode)
	e.Description = strings.TrimSpace(e.Description)
	return e
}
