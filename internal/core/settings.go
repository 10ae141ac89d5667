package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Categories   ListKind = "categories"
	Friends      ListKind = "friends"
	PaymentModes ListKind = "payment_modes"
)

// ErrNameTooLong rejects settings names over 100 characters.
var ErrNameTooLong = errors.New("name too long (max 100 characters)")

type (
	// ListKind selects one of the three reference lists.
	ListKind string

	SettingsItem struct {
		ID   string
		Name string
	}
)

// ListKinds returns every reference list in display order.
func ListKinds() []ListKind {
	return []ListKind{Categories, Friends, PaymentModes}
}

func (k ListKind) Valid() bool {
	switch k {
	case Categories, Friends, PaymentModes:
		return true
	default:
		return false
	}
}

// ParseListKind accepts the canonical names plus the camelCase "paymentModes".
func ParseListKind(s string) (ListKind, error) {
	switch strings.TrimSpace(s) {
	case "categories":
		return Categories, nil
	case "friends":
		return Friends, nil
	case "payment_modes", "paymentModes", "payment-modes":
		return PaymentModes, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownListKind, s)
}

// Label is the singular human name of an entry in the list.
func (k ListKind) Label() string {
	switch k {
	case Categories:
		return "category"
	case Friends:
		return "friend"
	case PaymentModes:
		return "payment mode"
	}
	return string(k)
}

func (i SettingsItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if len(i.Name) > 100 {
		return ErrNameTooLong
	}
	return nil
}

// Names returns the item names in order.
func Names(items []SettingsItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}
