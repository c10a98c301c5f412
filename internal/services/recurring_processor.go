package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cassa/internal/core"
)

// RecurringStore is the slice of storage the processor needs.
type RecurringStore interface {
	DueRecurringTransactions(ctx context.Context, due core.Date) ([]core.RecurringTransaction, error)
	AdvanceRecurringTransaction(ctx context.Context, id int64, next core.Date) error
}

// TransactionRecorder records a concrete transaction through the ledger.
type TransactionRecorder interface {
	Record(ctx context.Context, t *core.Transaction) (*core.Transaction, error)
}

// RecurringProcessor turns due recurring templates into concrete transactions
// and advances their schedules.
type RecurringProcessor struct {
	store    RecurringStore
	recorder TransactionRecorder
}

func NewRecurringProcessor(store RecurringStore, recorder TransactionRecorder) *RecurringProcessor {
	return &RecurringProcessor{store: store, recorder: recorder}
}

// ProcessDue handles every template whose next occurrence is on or before
// now. Each template is processed independently: one failure is logged and
// skipped, the rest still run. Returns the number of transactions created.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil || p.recorder == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	today := core.DateOf(now)
	due, err := p.store.DueRecurringTransactions(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("get due recurring transactions: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring transactions",
		"due", len(due),
		"processing_date", today.String())

	processed := 0
	for _, rec := range due {
		advancer, err := GetScheduleAdvancer(rec.Interval)
		if err != nil {
			slog.ErrorContext(ctx, "Skipping recurring transaction with unknown interval",
				"recurring_id", rec.ID, "interval", rec.Interval)
			continue
		}

		t := &core.Transaction{
			OwnerID:     rec.OwnerID,
			AccountID:   rec.AccountID,
			CategoryID:  rec.CategoryID,
			Amount:      rec.Amount,
			Type:        rec.Type,
			Date:        today,
			Description: rec.Description,
		}
		if _, err := p.recorder.Record(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to create transaction from recurring template",
				"recurring_id", rec.ID,
				"description", rec.Description,
				"error", err)
			continue
		}

		// Advance from the scheduled occurrence, not from today: a worker
		// that was down for a while still walks the schedule forward one
		// step per run until it catches up.
		next := advancer.Next(rec.NextOccurrence, rec.AnchorDay)
		if err := p.store.AdvanceRecurringTransaction(ctx, rec.ID, next); err != nil {
			slog.ErrorContext(ctx, "Failed to advance recurring schedule",
				"recurring_id", rec.ID,
				"error", err)
			continue
		}

		processed++
		slog.InfoContext(ctx, "Created transaction from recurring template",
			"recurring_id", rec.ID,
			"description", rec.Description,
			"amount", rec.Amount.String(),
			"interval", rec.Interval,
			"next_occurrence", next.String())
	}

	slog.InfoContext(ctx, "Recurring transaction processing complete",
		"processed", processed,
		"total_due", len(due))

	return processed, nil
}
