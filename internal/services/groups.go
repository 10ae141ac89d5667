package services

import (
	"context"
	"fmt"
	"strings"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
	"spendwise/internal/ledger"
)

// GroupInput is a group payment before its shares are computed.
type GroupInput struct {
	Description string
	PaidBy      string
	Date        core.Date
	Split       ledger.SplitRequest
}

func (s *LedgerService) ListGroups(ctx context.Context) ([]core.GroupPayment, error) {
	items, err := s.store.Groups().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list group payments: %w", err)
	}
	return items, nil
}

// buildGroup computes the shares for in and validates the resulting record.
func (s *LedgerService) buildGroup(in GroupInput) (core.GroupPayment, error) {
	parts, err := ledger.Split(in.Split)
	if err != nil {
		return core.GroupPayment{}, s.invalid(amqp.EntityGroupPayment, err)
	}
	splitType := in.Split.Type
	if splitType == "" {
		splitType = core.SplitEqual
	}
	paidBy := strings.TrimSpace(in.PaidBy)
	if paidBy == "" {
		paidBy = core.SelfName
	}
	g := core.GroupPayment{
		Description:  strings.TrimSpace(in.Description),
		TotalAmount:  in.Split.Total,
		PaidBy:       paidBy,
		SplitType:    splitType,
		Participants: parts,
		Date:         in.Date,
	}
	if err := g.Validate(); err != nil {
		return core.GroupPayment{}, s.invalid(amqp.EntityGroupPayment, err)
	}
	return g, nil
}

// AddGroup splits the total among the participants and stores the payment.
func (s *LedgerService) AddGroup(ctx context.Context, in GroupInput) (core.GroupPayment, error) {
	g, err := s.buildGroup(in)
	if err != nil {
		return core.GroupPayment{}, err
	}
	g.ID = s.newID()

	err = s.store.Groups().Update(ctx, func(cur []core.GroupPayment) ([]core.GroupPayment, error) {
		return ledger.Prepend(cur, g), nil
	})
	if err != nil {
		return core.GroupPayment{}, fmt.Errorf("save group payment: %w", err)
	}
	s.mutated(ctx, amqp.EntityGroupPayment, amqp.OpCreated, g.ID, g.TotalAmount, groupSummary(g))
	return g, nil
}

// UpdateGroup recomputes the shares of an existing group payment. Participants
// kept by name keep their settled flag.
func (s *LedgerService) UpdateGroup(ctx context.Context, id string, in GroupInput) (core.GroupPayment, error) {
	g, err := s.buildGroup(in)
	if err != nil {
		return core.GroupPayment{}, err
	}
	g.ID = id

	err = s.store.Groups().Update(ctx, func(cur []core.GroupPayment) ([]core.GroupPayment, error) {
		old, ok := ledger.FindByID(cur, id)
		if !ok {
			return nil, core.ErrNotFound
		}
		carrySettled(&g, old)
		return ledger.ReplaceByID(cur, g)
	})
	if err != nil {
		return core.GroupPayment{}, fmt.Errorf("update group payment %s: %w", id, err)
	}
	s.mutated(ctx, amqp.EntityGroupPayment, amqp.OpUpdated, g.ID, g.TotalAmount, groupSummary(g))
	return g, nil
}

func (s *LedgerService) DeleteGroup(ctx context.Context, id string) error {
	var removed core.GroupPayment
	err := s.store.Groups().Update(ctx, func(cur []core.GroupPayment) ([]core.GroupPayment, error) {
		removed, _ = ledger.FindByID(cur, id)
		return ledger.RemoveByID(cur, id)
	})
	if err != nil {
		return fmt.Errorf("delete group payment %s: %w", id, err)
	}
	s.mutated(ctx, amqp.EntityGroupPayment, amqp.OpDeleted, id, removed.TotalAmount, removed.Description)
	return nil
}

// ToggleParticipant flips one participant's settled flag.
func (s *LedgerService) ToggleParticipant(ctx context.Context, id string, index int) (core.GroupPayment, error) {
	var updated core.GroupPayment
	err := s.store.Groups().Update(ctx, func(cur []core.GroupPayment) ([]core.GroupPayment, error) {
		next, err := ledger.ToggleParticipant(cur, id, index)
		if err != nil {
			return nil, err
		}
		updated, _ = ledger.FindByID(next, id)
		return next, nil
	})
	if err != nil {
		return core.GroupPayment{}, fmt.Errorf("toggle participant: %w", err)
	}
	p := updated.Participants[index]
	op := amqp.OpUnsettled
	if p.Settled {
		op = amqp.OpSettled
	}
	s.mutated(ctx, amqp.EntityGroupPayment, op, id, p.Amount, p.Name+" in "+updated.Description)
	return updated, nil
}

func carrySettled(g *core.GroupPayment, old core.GroupPayment) {
	settled := make(map[string]bool, len(old.Participants))
	for _, p := range old.Participants {
		if !p.IsSelf {
			settled[strings.ToLower(p.Name)] = p.Settled
		}
	}
	for i := range g.Participants {
		if g.Participants[i].IsSelf {
			continue
		}
		if v, ok := settled[strings.ToLower(g.Participants[i].Name)]; ok {
			g.Participants[i].Settled = v
		}
	}
}

func groupSummary(g core.GroupPayment) string {
	return fmt.Sprintf("%s split %s among %d", g.Description, g.SplitType, len(g.Participants))
}
