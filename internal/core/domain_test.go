package core

import (
	"errors"
	"strings"
	"testing"
)

func TestDateValidate(t *testing.T) {
	if err := NewDate(2024, 1, 20).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-20")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-01-20" || !d.InMonth(2024, 1) {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("20/01/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if (Date{}).String() != "" {
		t.Fatalf("zero date should render empty")
	}
}

func TestParseDirectionAndSplitType(t *testing.T) {
	if d, err := ParseDirection(" PAID_BY_ME "); err != nil || d != PaidByMe {
		t.Fatalf("ParseDirection = %q, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	if st, err := ParseSplitType(""); err != nil || st != SplitEqual {
		t.Fatalf("empty split type should default to equal, got %q %v", st, err)
	}
	if st, err := ParseSplitType("Custom"); err != nil || st != SplitCustom {
		t.Fatalf("ParseSplitType(Custom) = %q, %v", st, err)
	}
	if _, err := ParseSplitType("percentage"); !errors.Is(err, ErrInvalidSplitType) {
		t.Fatalf("expected ErrInvalidSplitType, got %v", err)
	}
}

func TestPersonalExpenseValidate(t *testing.T) {
	good := PersonalExpense{
		Category:    "Food",
		PaymentMode: "Cash",
		Date:        NewDate(2024, 1, 20),
		Description: "Lunch",
		Amount:      Money{Cents: 1550},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	noDesc := good
	noDesc.Description = ""
	if err := noDesc.Validate(); err != nil {
		t.Fatalf("description is optional, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*PersonalExpense)
		want   error
	}{
		{"zero amount", func(e *PersonalExpense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(e *PersonalExpense) { e.Amount = Money{Cents: -1} }, ErrInvalidAmount},
		{"no category", func(e *PersonalExpense) { e.Category = "  " }, ErrEmptyCategory},
		{"no payment mode", func(e *PersonalExpense) { e.PaymentMode = "" }, ErrEmptyPaymentMode},
		{"zero date", func(e *PersonalExpense) { e.Date = Date{} }, ErrInvalidDate},
		{"long description", func(e *PersonalExpense) { e.Description = strings.Repeat("x", 201) }, ErrDescriptionTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := good
			tc.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFriendPaymentValidate(t *testing.T) {
	good := FriendPayment{
		Direction:   PaidByMe,
		Friend:      "Alice",
		Amount:      Money{Cents: 2500},
		Description: "Movie tickets",
		Date:        NewDate(2024, 1, 20),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []FriendPayment{
		{Direction: "x", Friend: "A", Amount: Money{Cents: 1}, Description: "d", Date: NewDate(2024, 1, 1)},
		{Direction: PaidForMe, Friend: "", Amount: Money{Cents: 1}, Description: "d", Date: NewDate(2024, 1, 1)},
		{Direction: PaidForMe, Friend: "A", Amount: Money{}, Description: "d", Date: NewDate(2024, 1, 1)},
		{Direction: PaidForMe, Friend: "A", Amount: Money{Cents: 1}, Description: " ", Date: NewDate(2024, 1, 1)},
		{Direction: PaidForMe, Friend: "A", Amount: Money{Cents: 1}, Description: "d"},
	}
	for i, p := range bads {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func teamDinner() GroupPayment {
	return GroupPayment{
		Description: "Team dinner",
		TotalAmount: Money{Cents: 12000},
		PaidBy:      SelfName,
		SplitType:   SplitEqual,
		Date:        NewDate(2024, 1, 20),
		Participants: []Participant{
			{Name: "Alice", Amount: Money{Cents: 3000}},
			{Name: "Bob", Amount: Money{Cents: 3000}, Settled: true},
			{Name: "Charlie", Amount: Money{Cents: 3000}},
			{Name: SelfName, Amount: Money{Cents: 3000}, IsSelf: true, Settled: true},
		},
	}
}

func TestGroupPaymentValidate(t *testing.T) {
	g := teamDinner()
	if err := g.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !g.IncludesSelf() {
		t.Fatalf("expected self participant")
	}
	if got := strings.Join(g.Friends(), ","); got != "Alice,Bob,Charlie" {
		t.Fatalf("Friends() = %s", got)
	}

	mismatch := teamDinner()
	mismatch.Participants[0].Amount = Money{Cents: 2999}
	if err := mismatch.Validate(); !errors.Is(err, ErrSplitMismatch) {
		t.Fatalf("expected ErrSplitMismatch, got %v", err)
	}

	empty := teamDinner()
	empty.Participants = nil
	if err := empty.Validate(); !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}

	dup := teamDinner()
	dup.Participants[1].Name = "alice"
	if err := dup.Validate(); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	twoSelf := teamDinner()
	twoSelf.Participants[0].IsSelf = true
	if err := twoSelf.Validate(); !errors.Is(err, ErrMultipleSelf) {
		t.Fatalf("expected ErrMultipleSelf, got %v", err)
	}
}

func TestGroupPaymentCloneIsIndependent(t *testing.T) {
	g := teamDinner()
	c := g.Clone()
	c.Participants[0].Settled = true
	if g.Participants[0].Settled {
		t.Fatalf("clone shares participant storage with original")
	}
}

func TestParseListKind(t *testing.T) {
	cases := map[string]ListKind{
		"categories":    Categories,
		"friends":       Friends,
		"payment_modes": PaymentModes,
		"paymentModes":  PaymentModes,
		"payment-modes": PaymentModes,
	}
	for in, want := range cases {
		got, err := ParseListKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseListKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseListKind("currencies"); !errors.Is(err, ErrUnknownListKind) {
		t.Fatalf("expected ErrUnknownListKind, got %v", err)
	}
}

func TestSettingsItemValidate(t *testing.T) {
	if err := (SettingsItem{Name: "Food"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (SettingsItem{Name: "   "}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := (SettingsItem{Name: strings.Repeat("n", 101)}).Validate(); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
}
