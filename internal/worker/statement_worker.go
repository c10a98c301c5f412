// Package worker appends committed ledger events to monthly statement files.
//
// The web process publishes transaction and transfer events over AMQP; this
// worker loads the authoritative rows from the database and writes one CSV
// line per event to <dir>/statement-YYYY-MM.csv. The database is always the
// source of truth: messages carry only IDs.
package worker

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cassa/internal/amqp"
	"cassa/internal/core"
)

// StatementStore is the slice of storage the worker reads from.
type StatementStore interface {
	TransactionByID(ctx context.Context, ownerID, transactionID int64) (*core.Transaction, error)
	TransferByID(ctx context.Context, ownerID, transferID int64) (*core.Transfer, error)
	AccountByID(ctx context.Context, ownerID, accountID int64) (*core.Account, error)
	CategoryByID(ctx context.Context, ownerID, categoryID int64) (*core.Category, error)
}

// StatementWorker handles statement messages from AMQP.
type StatementWorker struct {
	store StatementStore
	dir   string

	mu sync.Mutex // serializes appends to the statement files
}

func NewStatementWorker(store StatementStore, dir string) *StatementWorker {
	return &StatementWorker{store: store, dir: dir}
}

// HandleTransactionRecorded appends one statement line for a committed
// transaction.
func (w *StatementWorker) HandleTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	slog.InfoContext(ctx, "Processing transaction event", "transaction_id", msg.TransactionID)

	t, err := w.store.TransactionByID(ctx, msg.OwnerID, msg.TransactionID)
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}
	account, err := w.store.AccountByID(ctx, t.OwnerID, t.AccountID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	category, err := w.store.CategoryByID(ctx, t.OwnerID, t.CategoryID)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}

	record := transactionRecord(t, account.Name, category.Name)
	if err := w.append(t.Date, record); err != nil {
		return fmt.Errorf("append statement line: %w", err)
	}

	slog.InfoContext(ctx, "Statement line written",
		"transaction_id", t.ID,
		"account", account.Name,
		"amount", t.Amount.String())
	return nil
}

// HandleTransferExecuted appends one statement line for a committed transfer.
func (w *StatementWorker) HandleTransferExecuted(ctx context.Context, msg *amqp.TransferExecutedMessage) error {
	slog.InfoContext(ctx, "Processing transfer event", "transfer_id", msg.TransferID)

	t, err := w.store.TransferByID(ctx, msg.OwnerID, msg.TransferID)
	if err != nil {
		return fmt.Errorf("load transfer: %w", err)
	}
	from, err := w.store.AccountByID(ctx, t.OwnerID, t.FromAccountID)
	if err != nil {
		return fmt.Errorf("load source account: %w", err)
	}
	to, err := w.store.AccountByID(ctx, t.OwnerID, t.ToAccountID)
	if err != nil {
		return fmt.Errorf("load destination account: %w", err)
	}

	record := transferRecord(t, from.Name, to.Name)
	if err := w.append(t.Date, record); err != nil {
		return fmt.Errorf("append statement line: %w", err)
	}

	slog.InfoContext(ctx, "Statement line written",
		"transfer_id", t.ID,
		"from", from.Name,
		"to", to.Name,
		"amount", t.Amount.String())
	return nil
}

// transactionRecord builds the CSV fields for a transaction:
// date, kind, account, counterparty/category, description, signed amount.
func transactionRecord(t *core.Transaction, accountName, categoryName string) []string {
	amount := t.Amount.String()
	if t.Type == core.Expense {
		amount = "-" + amount
	}
	return []string{t.Date.String(), string(t.Type), accountName, categoryName, t.Description, amount}
}

func transferRecord(t *core.Transfer, fromName, toName string) []string {
	return []string{t.Date.String(), "transfer", fromName, toName, "", t.Amount.String()}
}

// append writes a record to the statement file for the given day's month.
func (w *StatementWorker) append(day core.Date, record []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create statement directory: %w", err)
	}

	name := fmt.Sprintf("statement-%04d-%02d.csv", day.Year(), day.Month())
	f, err := os.OpenFile(filepath.Join(w.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open statement file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	return f.Sync()
}
