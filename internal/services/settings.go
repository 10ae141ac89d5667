package services

import (
	"context"
	"fmt"
	"strings"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
	"spendwise/internal/ledger"
)

func (s *LedgerService) ListSettings(ctx context.Context, kind core.ListKind) ([]core.SettingsItem, error) {
	c, err := s.store.Settings(kind)
	if err != nil {
		return nil, err
	}
	items, err := c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return items, nil
}

// AddSetting appends a new entry to the reference list. Names are unique
// within a list, ignoring case.
func (s *LedgerService) AddSetting(ctx context.Context, kind core.ListKind, name string) (core.SettingsItem, error) {
	item := core.SettingsItem{ID: s.newID(), Name: strings.TrimSpace(name)}
	if err := item.Validate(); err != nil {
		return core.SettingsItem{}, s.invalid(amqp.EntitySettings, err)
	}
	c, err := s.store.Settings(kind)
	if err != nil {
		return core.SettingsItem{}, err
	}
	err = c.Update(ctx, func(cur []core.SettingsItem) ([]core.SettingsItem, error) {
		if err := checkUnique(cur, item); err != nil {
			return nil, err
		}
		return ledger.Append(cur, item), nil
	})
	if err != nil {
		return core.SettingsItem{}, s.settingsErr(kind, err)
	}
	s.mutated(ctx, amqp.EntitySettings, amqp.OpCreated, item.ID, core.Money{}, kind.Label()+" "+item.Name)
	return item, nil
}

// RenameSetting changes the name of one entry. Records that mention the old
// name are left as they are.
func (s *LedgerService) RenameSetting(ctx context.Context, kind core.ListKind, id, name string) (core.SettingsItem, error) {
	item := core.SettingsItem{ID: id, Name: strings.TrimSpace(name)}
	if err := item.Validate(); err != nil {
		return core.SettingsItem{}, s.invalid(amqp.EntitySettings, err)
	}
	c, err := s.store.Settings(kind)
	if err != nil {
		return core.SettingsItem{}, err
	}
	err = c.Update(ctx, func(cur []core.SettingsItem) ([]core.SettingsItem, error) {
		if err := checkUnique(cur, item); err != nil {
			return nil, err
		}
		return ledger.ReplaceByID(cur, item)
	})
	if err != nil {
		return core.SettingsItem{}, s.settingsErr(kind, err)
	}
	s.mutated(ctx, amqp.EntitySettings, amqp.OpUpdated, item.ID, core.Money{}, kind.Label()+" "+item.Name)
	return item, nil
}

// DeleteSetting removes one entry; nothing cascades to existing records.
func (s *LedgerService) DeleteSetting(ctx context.Context, kind core.ListKind, id string) error {
	c, err := s.store.Settings(kind)
	if err != nil {
		return err
	}
	var removed core.SettingsItem
	err = c.Update(ctx, func(cur []core.SettingsItem) ([]core.SettingsItem, error) {
		removed, _ = ledger.FindByID(cur, id)
		return ledger.RemoveByID(cur, id)
	})
	if err != nil {
		return s.settingsErr(kind, err)
	}
	s.mutated(ctx, amqp.EntitySettings, amqp.OpDeleted, id, core.Money{}, kind.Label()+" "+removed.Name)
	return nil
}

func (s *LedgerService) settingsErr(kind core.ListKind, err error) error {
	return fmt.Errorf("update %s: %w", kind, err)
}

func checkUnique(items []core.SettingsItem, item core.SettingsItem) error {
	for _, it := range items {
		if it.ID != item.ID && strings.EqualFold(it.Name, item.Name) {
			return fmt.Errorf("%w: %s", core.ErrDuplicateName, item.Name)
		}
	}
	return nil
}
