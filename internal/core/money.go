// Package core holds the domain model: money values, accounts, transactions
// and the budget split rules that operate on them.
//
// This file contains the Money type and the parsing of monetary amounts from
// user input.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount with exactly two fractional digits.
// Arithmetic that can produce extra digits (percentages, parsing) rounds
// half-up to two decimals. The zero value is 0.00.
type Money struct {
	value decimal.Decimal
}

// maxAmount caps amounts at 10 significant digits (8 integer + 2 fractional),
// mirroring the DECIMAL(10,2) column the balances live in.
var maxAmount = decimal.New(1, 8) // 100_000_000.00

// MoneyFromCents builds a Money from an integer number of cents. This is the
// form amounts take in the database.
func MoneyFromCents(cents int64) Money {
	return Money{value: decimal.New(cents, -2)}
}

// ParseAmount converts a decimal string to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Signs are rejected:
// the direction of a transaction is carried by its type, never by a negative
// amount. Returns ErrInvalidAmount for empty, malformed, signed or too large
// input.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("12,345") -> 12.35 (rounds up)
//	ParseAmount("-1")     -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	if strings.ContainsAny(s, "eE") {
		// No exponent notation in form input
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// decimal.Round is half away from zero, which is half-up for the
	// non-negative values accepted here.
	d = d.Round(2)
	if d.GreaterThanOrEqual(maxAmount) {
		return Money{}, ErrInvalidAmount
	}
	return Money{value: d}, nil
}

// Add returns m + n.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }

// Sub returns m - n. The result may be negative: account balances are allowed
// below zero.
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }

// Percent returns p percent of m, rounded half-up to two decimals.
func (m Money) Percent(p uint) Money {
	share := m.value.Mul(decimal.NewFromInt(int64(p))).Div(decimal.NewFromInt(100))
	return Money{value: share.Round(2)}
}

// Cents returns the amount as an integer number of cents. Exact, since Money
// never carries more than two fractional digits.
func (m Money) Cents() int64 { return m.value.Shift(2).IntPart() }

// Comparisons are exact decimal comparisons, never float approximations.

func (m Money) Equal(n Money) bool    { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool { return m.value.LessThan(n.value) }
func (m Money) IsNegative() bool      { return m.value.IsNegative() }
func (m Money) IsZero() bool          { return m.value.IsZero() }
func (m Money) IsPositive() bool      { return m.value.IsPositive() }

// String renders the amount with two decimals, e.g. "12.30".
func (m Money) String() string { return m.value.StringFixed(2) }

// Validate reports ErrInvalidAmount for negative amounts. Zero is legal for a
// Money value in general; stricter rules (transfers must be positive) live on
// the entities that own the amount.
func (m Money) Validate() error {
	if m.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
