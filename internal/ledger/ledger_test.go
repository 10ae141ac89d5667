package ledger

import (
	"errors"
	"math"
	"testing"

	"spendwise/internal/core"
)

func cents(c int64) core.Money { return core.Money{Cents: c} }

func TestBudgetUsage(t *testing.T) {
	u := BudgetUsage(cents(245075), DefaultMonthlyBudget)
	if math.Abs(u.Percent-81.69) > 0.01 {
		t.Fatalf("usage = %.4f, want ~81.69", u.Percent)
	}
	if u.Bar() != u.Percent {
		t.Fatalf("bar should equal percent under 100")
	}
	if u.Remaining() != cents(54925) {
		t.Fatalf("remaining = %s", u.Remaining())
	}

	over := BudgetUsage(cents(450000), DefaultMonthlyBudget)
	if over.Percent != 150 || over.Bar() != 100 {
		t.Fatalf("over budget: percent=%v bar=%v", over.Percent, over.Bar())
	}

	if z := BudgetUsage(cents(1000), core.Money{}); z.Percent != 0 || z.Bar() != 0 {
		t.Fatalf("zero budget should yield 0, got %v", z.Percent)
	}
}

func friendPayments() []core.FriendPayment {
	return []core.FriendPayment{
		{ID: "1", Direction: core.PaidByMe, Friend: "Alice", Amount: cents(2500)},
		{ID: "2", Direction: core.PaidByMe, Friend: "Bob", Amount: cents(1550), Settled: true},
		{ID: "3", Direction: core.PaidForMe, Friend: "Charlie", Amount: cents(3075)},
		{ID: "4", Direction: core.PaidForMe, Friend: "Diana", Amount: cents(2000)},
	}
}

func TestPendingTotalExcludesSettled(t *testing.T) {
	cases := []struct {
		name    string
		settled string
		want    int64
	}{
		{"first settled", "a", 3075},
		{"second settled", "b", 2500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ps := []core.FriendPayment{
				{ID: "a", Direction: core.PaidByMe, Amount: cents(2500), Settled: tc.settled == "a"},
				{ID: "b", Direction: core.PaidByMe, Amount: cents(3075), Settled: tc.settled == "b"},
			}
			if got := PendingTotal(ps, core.PaidByMe); got.Cents != tc.want {
				t.Fatalf("pending = %d, want %d", got.Cents, tc.want)
			}
		})
	}
}

func TestFriendBalances(t *testing.T) {
	b := FriendBalances(friendPayments())
	if b.OwedToYou != cents(2500) {
		t.Errorf("owed to you = %s, want 25.00", b.OwedToYou)
	}
	if b.YouOwe != cents(5075) {
		t.Errorf("you owe = %s, want 50.75", b.YouOwe)
	}
	if b.OwedToYou != PendingTotal(friendPayments(), core.PaidByMe) {
		t.Errorf("balances disagree with PendingTotal")
	}
}

func TestDoubleToggleRestoresAggregate(t *testing.T) {
	ps := friendPayments()
	before := FriendBalances(ps)

	once, err := ToggleFriendPayment(ps, "1")
	if err != nil {
		t.Fatal(err)
	}
	if !once[0].Settled || ps[0].Settled {
		t.Fatalf("toggle must flip a copy and leave the input alone")
	}
	if FriendBalances(once).OwedToYou.Cents != 0 {
		t.Fatalf("settled payment still counted")
	}
	twice, err := ToggleFriendPayment(once, "1")
	if err != nil {
		t.Fatal(err)
	}
	if FriendBalances(twice) != before {
		t.Fatalf("double toggle changed the aggregate")
	}

	if _, err := ToggleFriendPayment(ps, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEqualSplitScenario(t *testing.T) {
	parts, err := EqualSplit(cents(12000), []string{"Alice", "Bob", "Charlie"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 4 {
		t.Fatalf("participants = %d, want 4", len(parts))
	}
	for _, p := range parts {
		if p.Amount != cents(3000) {
			t.Errorf("%s share = %s, want 30.00", p.Name, p.Amount)
		}
	}
	self := parts[3]
	if !self.IsSelf || self.Name != core.SelfName || !self.Settled {
		t.Fatalf("self participant = %+v", self)
	}
	for _, p := range parts[:3] {
		if p.IsSelf || p.Settled {
			t.Fatalf("friend participant = %+v", p)
		}
	}
}

func TestEqualSplitSumsExactly(t *testing.T) {
	friends := []string{"A", "B", "C", "D", "E", "F"}
	for total := int64(1); total <= 2000; total += 7 {
		for n := 1; n <= len(friends); n++ {
			parts, err := EqualSplit(cents(total), friends[:n], n%2 == 0)
			if err != nil {
				t.Fatalf("total=%d n=%d: %v", total, n, err)
			}
			var sum int64
			exact := float64(total) / float64(len(parts))
			for _, p := range parts {
				sum += p.Amount.Cents
				if math.Abs(float64(p.Amount.Cents)-exact) >= 1 {
					t.Fatalf("total=%d share %d not within a cent of %.2f", total, p.Amount.Cents, exact)
				}
			}
			if sum != total {
				t.Fatalf("total=%d shares sum to %d", total, sum)
			}
		}
	}
}

func TestEqualSplitRemainderGoesFirst(t *testing.T) {
	parts, err := EqualSplit(cents(1000), []string{"Alice", "Bob"}, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{334, 333, 333}
	for i, p := range parts {
		if p.Amount.Cents != want[i] {
			t.Fatalf("share %d = %d, want %d", i, p.Amount.Cents, want[i])
		}
	}
}

func TestEqualSplitErrors(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		friends []string
		self    bool
		want    error
	}{
		{"no participants", 1000, nil, false, core.ErrNoParticipants},
		{"zero total", 0, []string{"Alice"}, true, core.ErrInvalidAmount},
		{"blank friend", 1000, []string{" "}, false, core.ErrEmptyFriend},
		{"duplicate friend", 1000, []string{"Alice", "alice"}, false, core.ErrDuplicateName},
		{"friend named after self", 1000, []string{"you"}, true, core.ErrDuplicateName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EqualSplit(cents(tc.total), tc.friends, tc.self)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCustomSplit(t *testing.T) {
	shares := []Share{{Name: "Alice", Amount: cents(5000)}, {Name: "Bob", Amount: cents(2000)}}
	parts, err := CustomSplit(cents(10000), shares, true, cents(3000))
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 3 || parts[0].Amount != cents(5000) || parts[2].Amount != cents(3000) || !parts[2].IsSelf {
		t.Fatalf("unexpected participants %+v", parts)
	}

	if _, err := CustomSplit(cents(10000), shares, false, core.Money{}); !errors.Is(err, core.ErrSplitMismatch) {
		t.Fatalf("expected ErrSplitMismatch, got %v", err)
	}
	neg := []Share{{Name: "Alice", Amount: cents(-100)}, {Name: "Bob", Amount: cents(10100)}}
	if _, err := CustomSplit(cents(10000), neg, false, core.Money{}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := CustomSplit(cents(10000), nil, false, core.Money{}); !errors.Is(err, core.ErrNoParticipants) {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}
	huge := []Share{{Name: "Alice", Amount: cents(1<<62 + 10000)}, {Name: "Bob", Amount: cents(-(1 << 62))}}
	if _, err := CustomSplit(cents(10000), huge, false, core.Money{}); !errors.Is(err, core.ErrSplitMismatch) {
		t.Fatalf("expected ErrSplitMismatch for a share above the total, got %v", err)
	}

	zero := []Share{{Name: "Alice", Amount: cents(10000)}, {Name: "Bob", Amount: cents(0)}}
	parts, err = CustomSplit(cents(10000), zero, true, core.Money{})
	if err != nil {
		t.Fatalf("zero shares should be allowed: %v", err)
	}
	if len(parts) != 3 || parts[1].Amount.Cents != 0 || parts[2].Amount.Cents != 0 {
		t.Fatalf("unexpected participants %+v", parts)
	}
}

func TestSplitDispatch(t *testing.T) {
	parts, err := Split(SplitRequest{Total: cents(900), Friends: []string{"Alice", "Bob"}, IncludeSelf: true})
	if err != nil || len(parts) != 3 || parts[0].Amount != cents(300) {
		t.Fatalf("equal dispatch: %+v %v", parts, err)
	}
	if _, err := Split(SplitRequest{Total: cents(900), Type: "percent"}); !errors.Is(err, core.ErrInvalidSplitType) {
		t.Fatalf("expected ErrInvalidSplitType, got %v", err)
	}
}

func teamDinner() core.GroupPayment {
	parts, _ := EqualSplit(cents(12000), []string{"Alice", "Bob", "Charlie"}, true)
	parts[1].Settled = true
	return core.GroupPayment{
		ID:           "g1",
		Description:  "Team dinner",
		TotalAmount:  cents(12000),
		PaidBy:       core.SelfName,
		SplitType:    core.SplitEqual,
		Participants: parts,
		Date:         core.NewDate(2024, 1, 20),
	}
}

func TestToggleParticipant(t *testing.T) {
	groups := []core.GroupPayment{teamDinner()}
	if got := GroupReceivables(groups); got != cents(6000) {
		t.Fatalf("receivables = %s, want 60.00", got)
	}

	out, err := ToggleParticipant(groups, "g1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if groups[0].Participants[0].Settled {
		t.Fatalf("input group mutated")
	}
	if got := GroupReceivables(out); got != cents(3000) {
		t.Fatalf("receivables after settle = %s, want 30.00", got)
	}
	back, err := ToggleParticipant(out, "g1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if GroupReceivables(back) != GroupReceivables(groups) {
		t.Fatalf("double toggle changed receivables")
	}

	if _, err := ToggleParticipant(groups, "g1", 3); !errors.Is(err, core.ErrSelfNotSettleable) {
		t.Fatalf("expected ErrSelfNotSettleable, got %v", err)
	}
	if _, err := ToggleParticipant(groups, "g1", 9); !errors.Is(err, core.ErrParticipantIndex) {
		t.Fatalf("expected ErrParticipantIndex, got %v", err)
	}
	if _, err := ToggleParticipant(groups, "nope", 0); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGroupReceivablesIgnoresOtherPayers(t *testing.T) {
	g := teamDinner()
	g.PaidBy = "Alice"
	if got := GroupReceivables([]core.GroupPayment{g}); got.Cents != 0 {
		t.Fatalf("receivables = %s, want 0", got)
	}
}

func TestReplaceByIDPreservesOrder(t *testing.T) {
	items := []core.PersonalExpense{
		{ID: "a", Description: "one", Amount: cents(100)},
		{ID: "b", Description: "two", Amount: cents(200)},
		{ID: "c", Description: "three", Amount: cents(300)},
	}
	edited := core.PersonalExpense{ID: "b", Description: "edited", Amount: cents(250)}
	out, err := ReplaceByID(items, edited)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0] != items[0] || out[1] != edited || out[2] != items[2] {
		t.Fatalf("unexpected collection %+v", out)
	}
	if items[1].Description != "two" {
		t.Fatalf("input mutated")
	}
	if _, err := ReplaceByID(items, core.PersonalExpense{ID: "z"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveFindPrependAppend(t *testing.T) {
	items := []core.SettingsItem{{ID: "1", Name: "Food"}, {ID: "2", Name: "Bills"}}

	out, err := RemoveByID(items, "1")
	if err != nil || len(out) != 1 || out[0].ID != "2" {
		t.Fatalf("remove: %+v %v", out, err)
	}
	if _, err := RemoveByID(items, "9"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if it, ok := FindByID(items, "2"); !ok || it.Name != "Bills" {
		t.Fatalf("find: %+v %v", it, ok)
	}
	if _, ok := FindByID(items, "9"); ok {
		t.Fatalf("find should miss")
	}

	pre := Prepend(items, core.SettingsItem{ID: "0"})
	if pre[0].ID != "0" || len(items) != 2 {
		t.Fatalf("prepend: %+v", pre)
	}
	app := Append(items, core.SettingsItem{ID: "3"})
	if app[2].ID != "3" || len(items) != 2 {
		t.Fatalf("append: %+v", app)
	}
}

func TestSummarize(t *testing.T) {
	expenses := []core.PersonalExpense{
		{ID: "1", Category: "Food", Date: core.NewDate(2024, 1, 20), Amount: cents(1550)},
		{ID: "2", Category: "Transport", Date: core.NewDate(2024, 1, 19), Amount: cents(4575)},
		{ID: "3", Category: "Food", Date: core.NewDate(2024, 1, 22), Amount: cents(4000)},
		{ID: "4", Category: "Bills", Date: core.NewDate(2023, 12, 30), Amount: cents(9900)},
	}
	d := Summarize(DashboardInput{
		Expenses:    expenses,
		Payments:    friendPayments(),
		Groups:      []core.GroupPayment{teamDinner()},
		Budget:      DefaultMonthlyBudget,
		Year:        2024,
		Month:       1,
		RecentLimit: 2,
	})

	if d.TotalExpenses != cents(10125) {
		t.Errorf("total = %s, want 101.25", d.TotalExpenses)
	}
	if d.OwedToYou != cents(8500) {
		t.Errorf("owed to you = %s, want 85.00", d.OwedToYou)
	}
	if d.YouOwe != cents(5075) {
		t.Errorf("you owe = %s, want 50.75", d.YouOwe)
	}
	if len(d.ByCategory) != 2 || d.ByCategory[0].Name != "Food" || d.ByCategory[0].Amount != cents(5550) {
		t.Errorf("by category = %+v", d.ByCategory)
	}
	if len(d.Recent) != 2 || d.Recent[0].ID != "3" || d.Recent[1].ID != "1" {
		t.Errorf("recent = %+v", d.Recent)
	}
	if math.Abs(d.UsagePercent-3.375) > 0.001 {
		t.Errorf("usage = %v", d.UsagePercent)
	}

	all := Summarize(DashboardInput{Expenses: expenses, Budget: DefaultMonthlyBudget})
	if all.TotalExpenses != cents(20025) || len(all.Recent) != DefaultRecentLimit-1 {
		t.Errorf("all-time summary = %s, %d recent", all.TotalExpenses, len(all.Recent))
	}
}
