package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1.00", true},
		{"1.0", "1.00", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{"0", "0.00", true},
		{"1.005", "1.01", true}, // half-up rounding
		{"1.004", "1.00", true},
		{" 2.50 ", "2.50", true},
		{"99999999.99", "99999999.99", true},
		{"100000000", "", false}, // over 10 digits
		{"-1", "", false},
		{"+1", "", false},
		{"1e2", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a, _ := ParseAmount("10.00")
	b, _ := ParseAmount("3.33")

	if got := a.Add(b).String(); got != "13.33" {
		t.Errorf("Add = %s, want 13.33", got)
	}
	if got := a.Sub(b).String(); got != "6.67" {
		t.Errorf("Sub = %s, want 6.67", got)
	}
	if got := b.Sub(a); !got.IsNegative() || got.String() != "-6.67" {
		t.Errorf("Sub below zero = %s, want -6.67", got)
	}
}

func TestMoneyPercent(t *testing.T) {
	cases := []struct {
		amount string
		pct    uint
		want   string
	}{
		{"100.00", 20, "20.00"},
		{"100.00", 50, "50.00"},
		{"10.00", 33, "3.30"},
		{"10.00", 34, "3.40"},
		{"0.10", 33, "0.03"},   // 0.033 rounds down
		{"0.50", 33, "0.17"},   // 0.165 rounds half-up
		{"100.00", 0, "0.00"},
		{"100.00", 150, "150.00"}, // percentages above 100 are not clamped
	}
	for _, tc := range cases {
		m, err := ParseAmount(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		if got := m.Percent(tc.pct).String(); got != tc.want {
			t.Errorf("%d%% of %s = %s, want %s", tc.pct, tc.amount, got, tc.want)
		}
	}
}

func TestMoneyCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 12345, -250} {
		m := MoneyFromCents(cents)
		if got := m.Cents(); got != cents {
			t.Errorf("MoneyFromCents(%d).Cents() = %d", cents, got)
		}
	}
	if got := MoneyFromCents(1230).String(); got != "12.30" {
		t.Errorf("String = %s, want 12.30", got)
	}
}

func TestMoneyComparison(t *testing.T) {
	a, _ := ParseAmount("10.00")
	b, _ := ParseAmount("10.0")
	c, _ := ParseAmount("10.01")

	if !a.Equal(b) {
		t.Error("10.00 should equal 10.0 exactly")
	}
	if !a.LessThan(c) {
		t.Error("10.00 should be less than 10.01")
	}
	if c.LessThan(a) {
		t.Error("10.01 should not be less than 10.00")
	}
}
