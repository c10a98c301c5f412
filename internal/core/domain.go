package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Daily   Interval = "daily"
	Weekly  Interval = "weekly"
	Monthly Interval = "monthly"
)

type (
	// TransactionType carries the sign of a transaction. Amounts themselves
	// are always non-negative.
	TransactionType string

	// Interval is the repetition frequency of a recurring transaction.
	Interval string

	// Date is a calendar day without a time component.
	Date struct {
		time.Time
	}

	Account struct {
		ID        int64
		OwnerID   int64
		Name      string
		Balance   Money
		CreatedAt time.Time
	}

	Category struct {
		ID          int64
		OwnerID     int64
		Name        string
		Description string
	}

	Transaction struct {
		ID          int64
		OwnerID     int64
		AccountID   int64
		CategoryID  int64
		Amount      Money
		Type        TransactionType
		Date        Date
		Description string
		CreatedAt   time.Time
	}

	Transfer struct {
		ID            int64
		OwnerID       int64
		FromAccountID int64
		ToAccountID   int64
		Amount        Money
		Date          Date
		CreatedAt     time.Time
	}

	// Rule allocates a budget into savings/needs/wants percentages. The three
	// values are independent: nothing forces them to sum to 100, and a rule
	// that over- or under-allocates is stored as-is.
	Rule struct {
		ID      int64
		OwnerID int64
		Savings uint
		Needs   uint
		Wants   uint
	}

	Budget struct {
		ID      int64
		OwnerID int64
		Rule    *Rule // nil when no allocation rule is attached
		Amount  Money
	}

	// BudgetSplit is the derived decomposition of a budget amount, never
	// stored.
	BudgetSplit struct {
		Savings Money
		Needs   Money
		Wants   Money
	}

	// RecurringTransaction is a template that periodically spawns a concrete
	// Transaction. AnchorDay remembers the day-of-month the schedule was
	// created on, so a monthly schedule clamped by a short month (Jan 31 ->
	// Feb 28) returns to the 31st when the month allows it.
	RecurringTransaction struct {
		ID             int64
		OwnerID        int64
		AccountID      int64
		CategoryID     int64
		Amount         Money
		Type           TransactionType
		Description    string
		Interval       Interval
		NextOccurrence Date
		AnchorDay      int
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrInvalidDate       = errors.New("invalid date")
	ErrEmptyName         = errors.New("empty name")
	ErrSameAccount       = errors.New("transfer source and destination are the same account")
	ErrInsufficientFunds = errors.New("insufficient funds in the source account")
	ErrNotFound          = errors.New("not found")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// Month returns the month as an int.
func (d Date) Month() int { return int(d.Time.Month()) }

// Year returns the year.
func (d Date) Year() int { return d.Time.Year() }

// String renders the date as YYYY-MM-DD, the form it takes in the database
// and in form input.
func (d Date) String() string { return d.Format("2006-01-02") }

// After reports whether d is a later calendar day than e.
func (d Date) After(e Date) bool { return d.Time.After(e.Time) }

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (i Interval) Validate() error {
	switch i {
	case Daily, Weekly, Monthly:
		return nil
	default:
		return ErrInvalidInterval
	}
}

func (a Account) Validate() error {
	if len(strings.TrimSpace(a.Name)) == 0 {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (t Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

func (r RecurringTransaction) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if t := r.Amount; t.IsNegative() || t.IsZero() {
		return ErrInvalidAmount
	}
	if err := r.Interval.Validate(); err != nil {
		return err
	}
	if err := r.NextOccurrence.Validate(); err != nil {
		return err
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// Split decomposes the budget amount per its rule. Each component is the
// rounded percentage of the full amount, computed independently; with rules
// that do not sum to 100 the three parts will not add up to the amount, and
// that is intended. Returns nil when the budget has no rule.
func (b Budget) Split() *BudgetSplit {
	return SplitAmount(b.Amount, b.Rule)
}

// SplitAmount applies a rule's percentages to an amount. Nil rule means no
// allocation and yields nil.
func SplitAmount(amount Money, r *Rule) *BudgetSplit {
	if r == nil {
		return nil
	}
	return &BudgetSplit{
		Savings: amount.Percent(r.Savings),
		Needs:   amount.Percent(r.Needs),
		Wants:   amount.Percent(r.Wants),
	}
}
