// Package ledger keeps account balances consistent with the transactions and
// transfers recorded against them.
//
// Every balance mutation flows through the Engine, which runs inside a single
// database transaction: either the balance update and the record write both
// land, or neither does. Callers never touch Account.Balance directly.
package ledger

import (
	"context"
	"fmt"

	"cassa/internal/core"
)

// Tx is the set of storage operations available inside one atomic unit. All
// lookups are owner-scoped; a row that exists but belongs to another owner
// surfaces core.ErrNotFound.
type Tx interface {
	AccountByID(ctx context.Context, ownerID, accountID int64) (*core.Account, error)
	UpdateAccountBalance(ctx context.Context, accountID int64, balance core.Money) error
	InsertTransaction(ctx context.Context, t *core.Transaction) (int64, error)
	TransactionByID(ctx context.Context, ownerID, transactionID int64) (*core.Transaction, error)
	UpdateTransaction(ctx context.Context, t *core.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, transactionID int64) error
	InsertTransfer(ctx context.Context, t *core.Transfer) (int64, error)
}

// Store provides the transactional boundary the engine runs in. If the
// callback returns an error the whole unit rolls back.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Apply returns the balance after a transaction lands on it: income adds,
// expense subtracts. There is no lower bound; an expense may drive the
// balance negative.
func Apply(balance core.Money, typ core.TransactionType, amount core.Money) core.Money {
	if typ == core.Income {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}

// Reverse undoes Apply: the inverse effect of the same transaction.
func Reverse(balance core.Money, typ core.TransactionType, amount core.Money) core.Money {
	if typ == core.Income {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// Engine executes balance-mutating operations against a transactional store.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// RecordTransaction creates a transaction and applies its effect to the
// owning account. On return t carries the assigned ID.
func (e *Engine) RecordTransaction(ctx context.Context, t *core.Transaction) (*core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := e.store.InTx(ctx, func(tx Tx) error {
		account, err := tx.AccountByID(ctx, t.OwnerID, t.AccountID)
		if err != nil {
			return fmt.Errorf("load account: %w", err)
		}
		balance := Apply(account.Balance, t.Type, t.Amount)
		if err := tx.UpdateAccountBalance(ctx, account.ID, balance); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		id, err := tx.InsertTransaction(ctx, t)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		t.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ReviseTransaction edits an existing transaction. The previously persisted
// effect is reversed on the previously persisted account before the new
// effect is applied, so amount, type and account changes all keep the ledger
// balanced. The ordering is mandatory: when the account changed, the reversal
// must target the original account, not the new one.
func (e *Engine) ReviseTransaction(ctx context.Context, t *core.Transaction) (*core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := e.store.InTx(ctx, func(tx Tx) error {
		prev, err := tx.TransactionByID(ctx, t.OwnerID, t.ID)
		if err != nil {
			return fmt.Errorf("load previous transaction: %w", err)
		}

		prevAccount, err := tx.AccountByID(ctx, t.OwnerID, prev.AccountID)
		if err != nil {
			return fmt.Errorf("load previous account: %w", err)
		}
		restored := Reverse(prevAccount.Balance, prev.Type, prev.Amount)
		if err := tx.UpdateAccountBalance(ctx, prevAccount.ID, restored); err != nil {
			return fmt.Errorf("reverse previous effect: %w", err)
		}

		// When the account is unchanged the new effect builds on the balance
		// just restored, not on the stale pre-reversal read.
		target := restored
		if t.AccountID != prev.AccountID {
			account, err := tx.AccountByID(ctx, t.OwnerID, t.AccountID)
			if err != nil {
				return fmt.Errorf("load account: %w", err)
			}
			target = account.Balance
		}
		applied := Apply(target, t.Type, t.Amount)
		if err := tx.UpdateAccountBalance(ctx, t.AccountID, applied); err != nil {
			return fmt.Errorf("apply new effect: %w", err)
		}

		t.CreatedAt = prev.CreatedAt
		if err := tx.UpdateTransaction(ctx, t); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect in
// the same unit. A bare row delete would silently corrupt the account
// balance.
func (e *Engine) DeleteTransaction(ctx context.Context, ownerID, transactionID int64) error {
	return e.store.InTx(ctx, func(tx Tx) error {
		t, err := tx.TransactionByID(ctx, ownerID, transactionID)
		if err != nil {
			return fmt.Errorf("load transaction: %w", err)
		}
		account, err := tx.AccountByID(ctx, ownerID, t.AccountID)
		if err != nil {
			return fmt.Errorf("load account: %w", err)
		}
		restored := Reverse(account.Balance, t.Type, t.Amount)
		if err := tx.UpdateAccountBalance(ctx, account.ID, restored); err != nil {
			return fmt.Errorf("reverse effect: %w", err)
		}
		if err := tx.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return nil
	})
}

// ExecuteTransfer moves funds between two accounts of the same owner. Fails
// with core.ErrSameAccount when source and destination match and with
// core.ErrInsufficientFunds when the source balance does not cover the
// amount; unlike plain expenses, transfers never overdraw. Both balance
// updates and the transfer record commit together.
func (e *Engine) ExecuteTransfer(ctx context.Context, t *core.Transfer) (*core.Transfer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := e.store.InTx(ctx, func(tx Tx) error {
		from, err := tx.AccountByID(ctx, t.OwnerID, t.FromAccountID)
		if err != nil {
			return fmt.Errorf("load source account: %w", err)
		}
		to, err := tx.AccountByID(ctx, t.OwnerID, t.ToAccountID)
		if err != nil {
			return fmt.Errorf("load destination account: %w", err)
		}
		if from.Balance.LessThan(t.Amount) {
			return core.ErrInsufficientFunds
		}
		if err := tx.UpdateAccountBalance(ctx, from.ID, from.Balance.Sub(t.Amount)); err != nil {
			return fmt.Errorf("debit source: %w", err)
		}
		if err := tx.UpdateAccountBalance(ctx, to.ID, to.Balance.Add(t.Amount)); err != nil {
			return fmt.Errorf("credit destination: %w", err)
		}
		id, err := tx.InsertTransfer(ctx, t)
		if err != nil {
			return fmt.Errorf("insert transfer: %w", err)
		}
		t.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
