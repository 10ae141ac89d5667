package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"2450.75", 245075, true},
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.001", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"1e3", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"١٢", 0, false}, // non-ASCII digits
		{"10000000000", MaxAmountCents, true},
		{"10000000000.01", 0, false},
		{"92233720368547758", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents   int64
		str     string
		display string
	}{
		{0, "0.00", "₹0.00"},
		{5, "0.05", "₹0.05"},
		{1550, "15.50", "₹15.50"},
		{12000, "120.00", "₹120.00"},
		{-3075, "-30.75", "-₹30.75"},
	}
	for _, tc := range cases {
		m := Money{Cents: tc.cents}
		if got := m.String(); got != tc.str {
			t.Errorf("String(%d) = %q, want %q", tc.cents, got, tc.str)
		}
		if got := m.Display(); got != tc.display {
			t.Errorf("Display(%d) = %q, want %q", tc.cents, got, tc.display)
		}
	}
}

func TestMoneyFloatAndAdd(t *testing.T) {
	m := Money{Cents: 2500}.Add(Money{Cents: 3075})
	if m.Cents != 5575 {
		t.Fatalf("Add = %d, want 5575", m.Cents)
	}
	if m.Float() != 55.75 {
		t.Fatalf("Float = %v, want 55.75", m.Float())
	}
}

func TestParseShare(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"0", 0, true},
		{"0.00", 0, true},
		{"0,001", 0, true},
		{"12.5", 1250, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{".", 0, false},
		{"10000000000.01", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseShare(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMoneyValidateBounds(t *testing.T) {
	if err := (Money{Cents: MaxAmountCents}).Validate(); err != nil {
		t.Fatalf("max amount rejected: %v", err)
	}
	if err := (Money{Cents: MaxAmountCents + 1}).Validate(); err == nil {
		t.Fatal("amount above max accepted")
	}
}
