package ledger

import "spendwise/internal/core"

// Record is anything addressable by id within a collection.
type Record interface {
	RecordID() string
}

func indexOf[T Record](items []T, id string) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

// FindByID returns the record with the given id.
func FindByID[T Record](items []T, id string) (T, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// ReplaceByID returns a copy of items with the record sharing item's id
// replaced. Order and every other record are preserved.
func ReplaceByID[T Record](items []T, item T) ([]T, error) {
	i := indexOf(items, item.RecordID())
	if i < 0 {
		return nil, core.ErrNotFound
	}
	out := append([]T(nil), items...)
	out[i] = item
	return out, nil
}

// RemoveByID returns a copy of items without the record with the given id.
func RemoveByID[T Record](items []T, id string) ([]T, error) {
	i := indexOf(items, id)
	if i < 0 {
		return nil, core.ErrNotFound
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), nil
}

// Prepend returns a copy of items with item first.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// Append returns a copy of items with item last.
func Append[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}
