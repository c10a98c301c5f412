// Package storage persists the ledger in SQLite.
//
// All queries are owner-scoped: a row that exists under a different owner is
// indistinguishable from a missing one and surfaces core.ErrNotFound. Balance
// mutations never happen here directly; they arrive through the ledger
// engine's transactional boundary (InTx).
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cassa/internal/core"
	"cassa/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
	q  queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, q: queries{db: db}}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InTx runs fn inside a database transaction and satisfies ledger.Store.
// A rolled-back unit leaves no trace: balances and records stay untouched.
func (r *SQLiteRepository) InTx(ctx context.Context, fn func(tx ledger.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(queries{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// dbtx is the common surface of *sql.DB and *sql.Tx the queries run on.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

const timeLayout = "2006-01-02T15:04:05Z"

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDay(s string) core.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}
	}
	return core.DateOf(t)
}

// Accounts

func (q queries) CreateAccount(ctx context.Context, a *core.Account) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO accounts (owner_id, name, balance_cents) VALUES (?, ?, ?)`,
		a.OwnerID, a.Name, a.Balance.Cents())
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return res.LastInsertId()
}

func (q queries) AccountByID(ctx context.Context, ownerID, accountID int64) (*core.Account, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, balance_cents, created_at
		 FROM accounts WHERE id = ? AND owner_id = ?`,
		accountID, ownerID)
	return scanAccount(row)
}

func (q queries) Accounts(ctx context.Context, ownerID int64) ([]core.Account, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, owner_id, name, balance_cents, created_at
		 FROM accounts WHERE owner_id = ? ORDER BY name`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		a, err := scanAccountRows(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// TotalBalance sums every account balance of an owner.
func (q queries) TotalBalance(ctx context.Context, ownerID int64) (core.Money, error) {
	var cents sql.NullInt64
	err := q.db.QueryRowContext(ctx,
		`SELECT SUM(balance_cents) FROM accounts WHERE owner_id = ?`,
		ownerID).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum balances: %w", err)
	}
	return core.MoneyFromCents(cents.Int64), nil
}

func (q queries) UpdateAccountBalance(ctx context.Context, accountID int64, balance core.Money) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE accounts SET balance_cents = ? WHERE id = ?`,
		balance.Cents(), accountID)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (*core.Account, error) {
	var a core.Account
	var cents int64
	var created string
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &cents, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.Balance = core.MoneyFromCents(cents)
	a.CreatedAt = parseTimestamp(created)
	return &a, nil
}

func scanAccountRows(rows *sql.Rows) (*core.Account, error) {
	var a core.Account
	var cents int64
	var created string
	if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &cents, &created); err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.Balance = core.MoneyFromCents(cents)
	a.CreatedAt = parseTimestamp(created)
	return &a, nil
}

// Categories

func (q queries) CreateCategory(ctx context.Context, c *core.Category) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO categories (owner_id, name, description) VALUES (?, ?, ?)`,
		c.OwnerID, c.Name, c.Description)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	return res.LastInsertId()
}

func (q queries) Categories(ctx context.Context, ownerID int64) ([]core.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, owner_id, name, description
		 FROM categories WHERE owner_id = ? ORDER BY name`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (q queries) CategoryByID(ctx context.Context, ownerID, categoryID int64) (*core.Category, error) {
	var c core.Category
	err := q.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, description
		 FROM categories WHERE id = ? AND owner_id = ?`,
		categoryID, ownerID).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

// Transactions

func (q queries) InsertTransaction(ctx context.Context, t *core.Transaction) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO transactions (owner_id, account_id, category_id, amount_cents, type, date, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.OwnerID, t.AccountID, t.CategoryID, t.Amount.Cents(), string(t.Type), t.Date.String(), t.Description)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return res.LastInsertId()
}

func (q queries) TransactionByID(ctx context.Context, ownerID, transactionID int64) (*core.Transaction, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, owner_id, account_id, category_id, amount_cents, type, date, description, created_at
		 FROM transactions WHERE id = ? AND owner_id = ?`,
		transactionID, ownerID)

	var t core.Transaction
	var cents int64
	var typ, date, created string
	err := row.Scan(&t.ID, &t.OwnerID, &t.AccountID, &t.CategoryID, &cents, &typ, &date, &t.Description, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	t.Amount = core.MoneyFromCents(cents)
	t.Type = core.TransactionType(typ)
	t.Date = parseDay(date)
	t.CreatedAt = parseTimestamp(created)
	return &t, nil
}

func (q queries) UpdateTransaction(ctx context.Context, t *core.Transaction) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE transactions
		 SET account_id = ?, category_id = ?, amount_cents = ?, type = ?, date = ?, description = ?
		 WHERE id = ? AND owner_id = ?`,
		t.AccountID, t.CategoryID, t.Amount.Cents(), string(t.Type), t.Date.String(), t.Description,
		t.ID, t.OwnerID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (q queries) DeleteTransaction(ctx context.Context, ownerID, transactionID int64) error {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner_id = ?`,
		transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// TransactionFilter narrows Transactions listings. Zero values mean "any".
type TransactionFilter struct {
	AccountID  int64
	CategoryID int64
	Type       core.TransactionType
	From       core.Date
	To         core.Date
	Limit      int
}

func (q queries) Transactions(ctx context.Context, ownerID int64, f TransactionFilter) ([]core.Transaction, error) {
	var (
		where = []string{"owner_id = ?"}
		args  = []any{ownerID}
	)
	if f.AccountID != 0 {
		where = append(where, "account_id = ?")
		args = append(args, f.AccountID)
	}
	if f.CategoryID != 0 {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if !f.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, f.To.String())
	}

	query := `SELECT id, owner_id, account_id, category_id, amount_cents, type, date, description, created_at
		 FROM transactions WHERE ` + strings.Join(where, " AND ") + ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var cents int64
		var typ, date, created string
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.AccountID, &t.CategoryID, &cents, &typ, &date, &t.Description, &created); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount = core.MoneyFromCents(cents)
		t.Type = core.TransactionType(typ)
		t.Date = parseDay(date)
		t.CreatedAt = parseTimestamp(created)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// Transfers

func (q queries) InsertTransfer(ctx context.Context, t *core.Transfer) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO transfers (owner_id, from_account_id, to_account_id, amount_cents, date)
		 VALUES (?, ?, ?, ?, ?)`,
		t.OwnerID, t.FromAccountID, t.ToAccountID, t.Amount.Cents(), t.Date.String())
	if err != nil {
		return 0, fmt.Errorf("insert transfer: %w", err)
	}
	return res.LastInsertId()
}

func (q queries) TransferByID(ctx context.Context, ownerID, transferID int64) (*core.Transfer, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, owner_id, from_account_id, to_account_id, amount_cents, date, created_at
		 FROM transfers WHERE id = ? AND owner_id = ?`,
		transferID, ownerID)

	var t core.Transfer
	var cents int64
	var date, created string
	err := row.Scan(&t.ID, &t.OwnerID, &t.FromAccountID, &t.ToAccountID, &cents, &date, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	t.Amount = core.MoneyFromCents(cents)
	t.Date = parseDay(date)
	t.CreatedAt = parseTimestamp(created)
	return &t, nil
}

func (q queries) Transfers(ctx context.Context, ownerID int64) ([]core.Transfer, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, owner_id, from_account_id, to_account_id, amount_cents, date, created_at
		 FROM transfers WHERE owner_id = ? ORDER BY date DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []core.Transfer
	for rows.Next() {
		var t core.Transfer
		var cents int64
		var date, created string
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.FromAccountID, &t.ToAccountID, &cents, &date, &created); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.Amount = core.MoneyFromCents(cents)
		t.Date = parseDay(date)
		t.CreatedAt = parseTimestamp(created)
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// Rules and budgets

func (q queries) CreateRule(ctx context.Context, r *core.Rule) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO rules (owner_id, savings, needs, wants) VALUES (?, ?, ?, ?)`,
		r.OwnerID, r.Savings, r.Needs, r.Wants)
	if err != nil {
		return 0, fmt.Errorf("insert rule: %w", err)
	}
	return res.LastInsertId()
}

func (q queries) Rules(ctx context.Context, ownerID int64) ([]core.Rule, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, owner_id, savings, needs, wants FROM rules WHERE owner_id = ? ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var rules []core.Rule
	for rows.Next() {
		var r core.Rule
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Savings, &r.Needs, &r.Wants); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (q queries) RuleByID(ctx context.Context, ownerID, ruleID int64) (*core.Rule, error) {
	var r core.Rule
	err := q.db.QueryRowContext(ctx,
		`SELECT id, owner_id, savings, needs, wants FROM rules WHERE id = ? AND owner_id = ?`,
		ruleID, ownerID).Scan(&r.ID, &r.OwnerID, &r.Savings, &r.Needs, &r.Wants)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan rule: %w", err)
	}
	return &r, nil
}

func (q queries) CreateBudget(ctx context.Context, b *core.Budget) (int64, error) {
	var ruleID any
	if b.Rule != nil {
		ruleID = b.Rule.ID
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO budgets (owner_id, rule_id, amount_cents) VALUES (?, ?, ?)`,
		b.OwnerID, ruleID, b.Amount.Cents())
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	return res.LastInsertId()
}

func (q queries) Budgets(ctx context.Context, ownerID int64) ([]core.Budget, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT b.id, b.owner_id, b.amount_cents, r.id, r.savings, r.needs, r.wants
		 FROM budgets b LEFT JOIN rules r ON r.id = b.rule_id
		 WHERE b.owner_id = ? ORDER BY b.id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		var cents int64
		var ruleID sql.NullInt64
		var savings, needs, wants sql.NullInt64
		if err := rows.Scan(&b.ID, &b.OwnerID, &cents, &ruleID, &savings, &needs, &wants); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Amount = core.MoneyFromCents(cents)
		if ruleID.Valid {
			b.Rule = &core.Rule{
				ID:      ruleID.Int64,
				OwnerID: b.OwnerID,
				Savings: uint(savings.Int64),
				Needs:   uint(needs.Int64),
				Wants:   uint(wants.Int64),
			}
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// Recurring transactions

func (q queries) CreateRecurringTransaction(ctx context.Context, r *core.RecurringTransaction) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO recurring_transactions
		 (owner_id, account_id, category_id, amount_cents, type, description, interval, next_occurrence, anchor_day)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.OwnerID, r.AccountID, r.CategoryID, r.Amount.Cents(), string(r.Type), r.Description,
		string(r.Interval), r.NextOccurrence.String(), r.AnchorDay)
	if err != nil {
		return 0, fmt.Errorf("insert recurring transaction: %w", err)
	}
	return res.LastInsertId()
}

func (q queries) RecurringTransactions(ctx context.Context, ownerID int64) ([]core.RecurringTransaction, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, owner_id, account_id, category_id, amount_cents, type, description, interval, next_occurrence, anchor_day
		 FROM recurring_transactions WHERE owner_id = ? ORDER BY next_occurrence, id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("query recurring transactions: %w", err)
	}
	defer rows.Close()
	return collectRecurring(rows)
}

// DueRecurringTransactions returns every template, across owners, whose
// next_occurrence is on or before the given day. The recurring worker calls
// this once per tick.
func (q queries) DueRecurringTransactions(ctx context.Context, due core.Date) ([]core.RecurringTransaction, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, owner_id, account_id, category_id, amount_cents, type, description, interval, next_occurrence, anchor_day
		 FROM recurring_transactions WHERE next_occurrence <= ? ORDER BY next_occurrence, id`,
		due.String())
	if err != nil {
		return nil, fmt.Errorf("query due recurring transactions: %w", err)
	}
	defer rows.Close()
	return collectRecurring(rows)
}

func (q queries) AdvanceRecurringTransaction(ctx context.Context, id int64, next core.Date) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE recurring_transactions SET next_occurrence = ? WHERE id = ?`,
		next.String(), id)
	if err != nil {
		return fmt.Errorf("advance recurring transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func collectRecurring(rows *sql.Rows) ([]core.RecurringTransaction, error) {
	var recs []core.RecurringTransaction
	for rows.Next() {
		var r core.RecurringTransaction
		var cents int64
		var typ, interval, next string
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.AccountID, &r.CategoryID, &cents, &typ, &r.Description, &interval, &next, &r.AnchorDay); err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		r.Amount = core.MoneyFromCents(cents)
		r.Type = core.TransactionType(typ)
		r.Interval = core.Interval(interval)
		r.NextOccurrence = parseDay(next)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Repository-level delegates running outside any explicit transaction.

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a *core.Account) (int64, error) {
	return r.q.CreateAccount(ctx, a)
}

func (r *SQLiteRepository) AccountByID(ctx context.Context, ownerID, accountID int64) (*core.Account, error) {
	return r.q.AccountByID(ctx, ownerID, accountID)
}

func (r *SQLiteRepository) Accounts(ctx context.Context, ownerID int64) ([]core.Account, error) {
	return r.q.Accounts(ctx, ownerID)
}

func (r *SQLiteRepository) TotalBalance(ctx context.Context, ownerID int64) (core.Money, error) {
	return r.q.TotalBalance(ctx, ownerID)
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c *core.Category) (int64, error) {
	return r.q.CreateCategory(ctx, c)
}

func (r *SQLiteRepository) Categories(ctx context.Context, ownerID int64) ([]core.Category, error) {
	return r.q.Categories(ctx, ownerID)
}

func (r *SQLiteRepository) CategoryByID(ctx context.Context, ownerID, categoryID int64) (*core.Category, error) {
	return r.q.CategoryByID(ctx, ownerID, categoryID)
}

func (r *SQLiteRepository) Transactions(ctx context.Context, ownerID int64, f TransactionFilter) ([]core.Transaction, error) {
	return r.q.Transactions(ctx, ownerID, f)
}

func (r *SQLiteRepository) TransactionByID(ctx context.Context, ownerID, transactionID int64) (*core.Transaction, error) {
	return r.q.TransactionByID(ctx, ownerID, transactionID)
}

func (r *SQLiteRepository) Transfers(ctx context.Context, ownerID int64) ([]core.Transfer, error) {
	return r.q.Transfers(ctx, ownerID)
}

func (r *SQLiteRepository) TransferByID(ctx context.Context, ownerID, transferID int64) (*core.Transfer, error) {
	return r.q.TransferByID(ctx, ownerID, transferID)
}

func (r *SQLiteRepository) CreateRule(ctx context.Context, rule *core.Rule) (int64, error) {
	return r.q.CreateRule(ctx, rule)
}

func (r *SQLiteRepository) Rules(ctx context.Context, ownerID int64) ([]core.Rule, error) {
	return r.q.Rules(ctx, ownerID)
}

func (r *SQLiteRepository) RuleByID(ctx context.Context, ownerID, ruleID int64) (*core.Rule, error) {
	return r.q.RuleByID(ctx, ownerID, ruleID)
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b *core.Budget) (int64, error) {
	return r.q.CreateBudget(ctx, b)
}

func (r *SQLiteRepository) Budgets(ctx context.Context, ownerID int64) ([]core.Budget, error) {
	return r.q.Budgets(ctx, ownerID)
}

func (r *SQLiteRepository) CreateRecurringTransaction(ctx context.Context, rec *core.RecurringTransaction) (int64, error) {
	return r.q.CreateRecurringTransaction(ctx, rec)
}

func (r *SQLiteRepository) RecurringTransactions(ctx context.Context, ownerID int64) ([]core.RecurringTransaction, error) {
	return r.q.RecurringTransactions(ctx, ownerID)
}

func (r *SQLiteRepository) DueRecurringTransactions(ctx context.Context, due core.Date) ([]core.RecurringTransaction, error) {
	return r.q.DueRecurringTransactions(ctx, due)
}

func (r *SQLiteRepository) AdvanceRecurringTransaction(ctx context.Context, id int64, next core.Date) error {
	return r.q.AdvanceRecurringTransaction(ctx, id, next)
}
