package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"cassa/internal/core"
)

// handleCreateAccount opens a new account, optionally with a starting balance.
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
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

	name := sanitizeInput(r.Form.Get("name"))
	balance := core.Money{}
	if v := strings.TrimSpace(r.Form.Get("balance")); v != "" {
		parsed, err := core.ParseAmount(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid starting balance</div>`))
			return
		}
		balance = parsed
	}

	account := core.Account{
		OwnerID: s.ownerID,
		Name:    name,
		Balance: balance,
	}
	if err := account.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	id, err := s.store.CreateAccount(r.Context(), &account)
	if err != nil {
		slog.ErrorContext(r.Context(), "Account create error", "error", err, "account", account.Name)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to create account</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Account created", "account_id", id, "name", account.Name)
	w.Header().Set("HX-Trigger", "account:created")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Account created: ` +
		template.HTMLEscapeString(account.Name) +
		` (` + template.HTMLEscapeString(formatAmount(account.Balance)) + `)</div>`))
}
