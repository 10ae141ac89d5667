package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SelfName is the participant name used for the ledger owner.
const SelfName = "You"

// MaxDescriptionLen bounds free-text descriptions.
const MaxDescriptionLen = 200

const (
	// PaidByMe records a payment the user made on a friend's behalf; the
	// friend owes it back.
	PaidByMe Direction = "paid_by_me"
	// PaidForMe records a payment a friend made on the user's behalf; the
	// user owes it back.
	PaidForMe Direction = "paid_for_me"
)

const (
	SplitEqual  SplitType = "equal"
	SplitCustom SplitType = "custom"
)

type (
	Direction string
	SplitType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	PersonalExpense struct {
		ID          string
		Category    string
		PaymentMode string
		Date        Date
		Description string
		Amount      Money
	}

	FriendPayment struct {
		ID          string
		Direction   Direction
		Friend      string
		Amount      Money
		Description string
		Date        Date
		Settled     bool
	}

	Participant struct {
		Name    string
		Amount  Money
		IsSelf  bool
		Settled bool
	}

	GroupPayment struct {
		ID           string
		Description  string
		TotalAmount  Money
		PaidBy       string
		SplitType    SplitType
		Participants []Participant
		Date         Date
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = fmt.Errorf("description too long (max %d characters)", MaxDescriptionLen)
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyPaymentMode   = errors.New("empty payment mode")
	ErrEmptyFriend        = errors.New("empty friend name")
	ErrEmptyPayer         = errors.New("empty payer")
	ErrInvalidDirection   = errors.New("invalid payment direction")
	ErrInvalidSplitType   = errors.New("invalid split type")
	ErrNoParticipants     = errors.New("at least one participant is required")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrSplitMismatch      = errors.New("participant amounts do not add up to the total")
	ErrMultipleSelf       = errors.New("only one self participant is allowed")
	ErrSelfNotSettleable  = errors.New("self participant cannot be settled")
	ErrParticipantIndex   = errors.New("participant index out of range")
	ErrEmptyName          = errors.New("empty name")
	ErrUnknownListKind    = errors.New("unknown settings list")
	ErrNotFound           = errors.New("not found")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date at UTC midnight.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// InMonth reports whether the date falls in the given year and month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && int(d.Month()) == month
}

// Validate requires a positive amount no larger than MaxAmountCents.
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmountCents {
		return ErrInvalidAmount
	}
	return nil
}

func (d Direction) Valid() bool {
	return d == PaidByMe || d == PaidForMe
}

// ParseDirection maps user input to a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

func (t SplitType) Valid() bool {
	return t == SplitEqual || t == SplitCustom
}

// ParseSplitType maps user input to a SplitType; empty means equal.
func ParseSplitType(s string) (SplitType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SplitEqual, nil
	}
	t := SplitType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSplitType, s)
	}
	return t, nil
}

func validateDescription(desc string, required bool) error {
	if required && strings.TrimSpace(desc) == "" {
		return ErrEmptyDescription
	}
	if len(desc) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func (e PersonalExpense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.PaymentMode) == "" {
		return ErrEmptyPaymentMode
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := validateDescription(e.Description, false); err != nil {
		return err
	}
	return e.Amount.Validate()
}

func (p FriendPayment) Validate() error {
	if !p.Direction.Valid() {
		return ErrInvalidDirection
	}
	if strings.TrimSpace(p.Friend) == "" {
		return ErrEmptyFriend
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if err := validateDescription(p.Description, true); err != nil {
		return err
	}
	return p.Date.Validate()
}

// Validate checks the record shape and that shares add up to the total.
func (g GroupPayment) Validate() error {
	if err := validateDescription(g.Description, true); err != nil {
		return err
	}
	if err := g.TotalAmount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(g.PaidBy) == "" {
		return ErrEmptyPayer
	}
	if !g.SplitType.Valid() {
		return ErrInvalidSplitType
	}
	if err := g.Date.Validate(); err != nil {
		return err
	}
	if len(g.Participants) == 0 {
		return ErrNoParticipants
	}
	var (
		sum   int64
		selfs int
		seen  = make(map[string]struct{}, len(g.Participants))
	)
	for _, p := range g.Participants {
		if strings.TrimSpace(p.Name) == "" {
			return ErrEmptyFriend
		}
		key := strings.ToLower(p.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
		seen[key] = struct{}{}
		if p.IsSelf {
			selfs++
		}
		if p.Amount.Cents < 0 {
			return ErrInvalidAmount
		}
		if p.Amount.Cents > g.TotalAmount.Cents {
			return fmt.Errorf("%w: share for %s exceeds total", ErrSplitMismatch, p.Name)
		}
		sum += p.Amount.Cents
	}
	if selfs > 1 {
		return ErrMultipleSelf
	}
	if sum != g.TotalAmount.Cents {
		return fmt.Errorf("%w: shares %s, total %s", ErrSplitMismatch, Money{Cents: sum}, g.TotalAmount)
	}
	return nil
}

// IncludesSelf reports whether the ledger owner takes a share.
func (g GroupPayment) IncludesSelf() bool {
	for _, p := range g.Participants {
		if p.IsSelf {
			return true
		}
	}
	return false
}

// Friends returns the non-self participant names in order.
func (g GroupPayment) Friends() []string {
	out := make([]string, 0, len(g.Participants))
	for _, p := range g.Participants {
		if !p.IsSelf {
			out = append(out, p.Name)
		}
	}
	return out
}

// Clone returns a copy that shares no participant slice with g.
func (g GroupPayment) Clone() GroupPayment {
	g.Participants = append([]Participant(nil), g.Participants...)
	return g
}

// RecordID implementations let generic collection helpers address records.
func (e PersonalExpense) RecordID() string { return e.ID }
func (p FriendPayment) RecordID() string   { return p.ID }
func (g GroupPayment) RecordID() string    { return g.ID }
func (i SettingsItem) RecordID() string    { return i.ID }
