package services

import (
	"context"
	"fmt"
	"log/slog"

	"cassa/internal/core"
	"cassa/internal/ledger"
)

// LedgerEventPublisher announces committed ledger mutations to the statement
// pipeline. Publishing is best-effort: the ledger write has already committed
// when these run, so a broker failure is logged, never surfaced to the user.
type LedgerEventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, ownerID, transactionID int64) error
	PublishTransferExecuted(ctx context.Context, ownerID, transferID int64) error
}

// TransactionService orchestrates ledger operations and statement events.
type TransactionService struct {
	engine *ledger.Engine
	events LedgerEventPublisher // nil when the statement pipeline is disabled
}

func NewTransactionService(engine *ledger.Engine, events LedgerEventPublisher) *TransactionService {
	return &TransactionService{engine: engine, events: events}
}

// Record creates a transaction through the ledger engine and announces it.
func (s *TransactionService) Record(ctx context.Context, t *core.Transaction) (*core.Transaction, error) {
	recorded, err := s.engine.RecordTransaction(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	s.publishTransaction(ctx, recorded.OwnerID, recorded.ID)
	return recorded, nil
}

// Revise edits an existing transaction; the engine reverses the prior effect
// before applying the new one.
func (s *TransactionService) Revise(ctx context.Context, t *core.Transaction) (*core.Transaction, error) {
	revised, err := s.engine.ReviseTransaction(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("revise transaction: %w", err)
	}

	s.publishTransaction(ctx, revised.OwnerID, revised.ID)
	return revised, nil
}

// Delete removes a transaction and restores its balance effect.
func (s *TransactionService) Delete(ctx context.Context, ownerID, transactionID int64) error {
	if err := s.engine.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Transfer moves funds between two accounts and announces the transfer.
func (s *TransactionService) Transfer(ctx context.Context, t *core.Transfer) (*core.Transfer, error) {
	executed, err := s.engine.ExecuteTransfer(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("execute transfer: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishTransferExecuted(ctx, executed.OwnerID, executed.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish transfer event",
				"transfer_id", executed.ID, "error", err)
		}
	}
	return executed, nil
}

func (s *TransactionService) publishTransaction(ctx context.Context, ownerID, id int64) {
	if s.events == nil {
		slog.DebugContext(ctx, "Statement events disabled, skipping publish", "transaction_id", id)
		return
	}
	if err := s.events.PublishTransactionRecorded(ctx, ownerID, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", id, "error", err)
	}
}
