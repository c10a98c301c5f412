package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"cassa/internal/core"
	"cassa/internal/storage"
)

// handleTransactions renders the transaction list on GET and records a new
// transaction on POST.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// transactionFilterFrom builds a listing filter from query parameters.
// Unparseable values are ignored rather than rejected.
func transactionFilterFrom(r *http.Request) storage.TransactionFilter {
	q := r.URL.Query()
	f := storage.TransactionFilter{Limit: 100}

	if id, err := parseID(q.Get("account_id")); err == nil {
		f.AccountID = id
	}
	if id, err := parseID(q.Get("category_id")); err == nil {
		f.CategoryID = id
	}
	if t := core.TransactionType(strings.TrimSpace(q.Get("type"))); t.Validate() == nil {
		f.Type = t
	}
	if from, err := parseDate(q.Get("from")); err == nil {
		f.From = from
	}
	if to, err := parseDate(q.Get("to")); err == nil {
		f.To = to
	}
	return f
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	transactions, err := s.store.Transactions(r.Context(), s.ownerID, transactionFilterFrom(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}
	accounts, err := s.store.Accounts(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Account list error", "error", err)
	}
	categories, err := s.store.Categories(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list error", "error", err)
	}

	accountNames := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	type row struct {
		ID          int64
		Date        string
		Description string
		Account     string
		Category    string
		Type        string
		Amount      string
	}
	data := struct {
		Rows       []row
		Accounts   []core.Account
		Categories []core.Category
	}{Accounts: accounts, Categories: categories}
	for _, t := range transactions {
		data.Rows = append(data.Rows, row{
			ID:          t.ID,
			Date:        t.Date.String(),
			Description: t.Description,
			Account:     accountNames[t.AccountID],
			Category:    categoryNames[t.CategoryID],
			Type:        string(t.Type),
			Amount:      formatAmount(t.Amount),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "transactions.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// transactionFromForm parses the shared create/update form fields.
func (s *Server) transactionFromForm(r *http.Request) (*core.Transaction, string) {
	accountID, err := parseID(r.Form.Get("account_id"))
	if err != nil {
		return nil, "Invalid account"
	}
	categoryID, err := parseID(r.Form.Get("category_id"))
	if err != nil {
		return nil, "Invalid category"
	}
	amount, err := core.ParseAmount(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		return nil, "Invalid amount"
	}
	date, err := parseDate(r.Form.Get("date"))
	if err != nil {
		return nil, "Invalid date"
	}

	t := &core.Transaction{
		OwnerID:     s.ownerID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        core.TransactionType(r.Form.Get("type")),
		Date:        date,
		Description: sanitizeInput(r.Form.Get("description")),
	}
	if err := t.Validate(); err != nil {
		return nil, err.Error()
	}
	return t, ""
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	t, msg := s.transactionFromForm(r)
	if msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	recorded, err := s.ledger.Record(r.Context(), t)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Unknown account or category</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction record error", "error", err, "description", t.Description)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to record transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transaction:recorded")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Recorded ` + template.HTMLEscapeString(string(recorded.Type)) +
		`: ` + template.HTMLEscapeString(recorded.Description) +
		` ` + template.HTMLEscapeString(formatAmount(recorded.Amount)) + `</div>`))
}

// handleUpdateTransaction edits a transaction; the ledger reverses the old
// effect before applying the new values.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	id, err := parseID(r.Form.Get("id"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid transaction ID</div>`))
		return
	}
	t, msg := s.transactionFromForm(r)
	if msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}
	t.ID = id

	revised, err := s.ledger.Revise(r.Context(), t)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Transaction not found</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction revise error", "error", err, "transaction_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to update transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transaction:updated")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Updated: ` +
		template.HTMLEscapeString(revised.Description) +
		` ` + template.HTMLEscapeString(formatAmount(revised.Amount)) + `</div>`))
}

// handleDeleteTransaction removes a transaction and restores its balance
// effect.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	id, err := parseID(r.Form.Get("id"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid transaction ID</div>`))
		return
	}

	if err := s.ledger.Delete(r.Context(), s.ownerID, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Transaction not found</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err, "transaction_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to delete transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transaction:deleted")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Transaction deleted</div>`))
}
