package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cassa/internal/core"
)

type fakeRecurringStore struct {
	due      []core.RecurringTransaction
	advanced map[int64]core.Date
}

func (f *fakeRecurringStore) DueRecurringTransactions(_ context.Context, _ core.Date) ([]core.RecurringTransaction, error) {
	return f.due, nil
}

func (f *fakeRecurringStore) AdvanceRecurringTransaction(_ context.Context, id int64, next core.Date) error {
	if f.advanced == nil {
		f.advanced = make(map[int64]core.Date)
	}
	f.advanced[id] = next
	return nil
}

type fakeRecorder struct {
	recorded []core.Transaction
	failFor  int64 // account ID whose transactions fail
}

func (f *fakeRecorder) Record(_ context.Context, t *core.Transaction) (*core.Transaction, error) {
	if f.failFor != 0 && t.AccountID == f.failFor {
		return nil, errors.New("record failed")
	}
	f.recorded = append(f.recorded, *t)
	return t, nil
}

func recurring(id int64, interval core.Interval, next core.Date, anchor int) core.RecurringTransaction {
	amt, _ := core.ParseAmount("12.00")
	return core.RecurringTransaction{
		ID:             id,
		OwnerID:        1,
		AccountID:      id, // one account per template keeps failure injection simple
		CategoryID:     1,
		Amount:         amt,
		Type:           core.Expense,
		Description:    "subscription",
		Interval:       interval,
		NextOccurrence: next,
		AnchorDay:      anchor,
	}
}

func TestRecurringProcessor_ProcessDue(t *testing.T) {
	now := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	store := &fakeRecurringStore{
		due: []core.RecurringTransaction{
			recurring(1, core.Daily, core.NewDate(2025, 1, 31), 31),
			recurring(2, core.Monthly, core.NewDate(2025, 1, 31), 31),
		},
	}
	recorder := &fakeRecorder{}
	processor := NewRecurringProcessor(store, recorder)

	count, err := processor.ProcessDue(context.Background(), now)
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if count != 2 {
		t.Fatalf("processed = %d, want 2", count)
	}
	if len(recorder.recorded) != 2 {
		t.Fatalf("recorded = %d transactions, want 2", len(recorder.recorded))
	}
	for _, rec := range recorder.recorded {
		if !rec.Date.Equal(core.NewDate(2025, 1, 31).Time) {
			t.Errorf("spawned transaction dated %s, want 2025-01-31", rec.Date)
		}
	}

	if next := store.advanced[1]; !next.Equal(core.NewDate(2025, 2, 1).Time) {
		t.Errorf("daily advanced to %s, want 2025-02-01", next)
	}
	if next := store.advanced[2]; !next.Equal(core.NewDate(2025, 2, 28).Time) {
		t.Errorf("monthly advanced to %s, want 2025-02-28 (clamped)", next)
	}
}

func TestRecurringProcessor_RecordFailureSkipsAdvance(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeRecurringStore{
		due: []core.RecurringTransaction{
			recurring(1, core.Daily, core.NewDate(2025, 6, 1), 1),
			recurring(2, core.Daily, core.NewDate(2025, 6, 1), 1),
		},
	}
	recorder := &fakeRecorder{failFor: 1}
	processor := NewRecurringProcessor(store, recorder)

	count, err := processor.ProcessDue(context.Background(), now)
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if count != 1 {
		t.Fatalf("processed = %d, want 1", count)
	}
	if _, ok := store.advanced[1]; ok {
		t.Error("failed template must not be advanced; it should retry next run")
	}
	if _, ok := store.advanced[2]; !ok {
		t.Error("healthy template should still be advanced")
	}
}

func TestRecurringProcessor_NotInitialized(t *testing.T) {
	processor := NewRecurringProcessor(nil, nil)
	if _, err := processor.ProcessDue(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for uninitialized processor")
	}
}
