package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"cassa/internal/core"
)

// handleTransfers renders the transfer page on GET and moves funds between
// accounts on POST.
func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransfers(w, r)
	case http.MethodPost:
		s.createTransfer(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listTransfers(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	transfers, err := s.store.Transfers(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transfer list error", "error", err)
		http.Error(w, "failed to load transfers", http.StatusInternalServerError)
		return
	}
	accounts, err := s.store.Accounts(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Account list error", "error", err)
	}

	accountNames := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}

	type row struct {
		Date   string
		From   string
		To     string
		Amount string
	}
	data := struct {
		Rows     []row
		Accounts []core.Account
	}{Accounts: accounts}
	for _, t := range transfers {
		data.Rows = append(data.Rows, row{
			Date:   t.Date.String(),
			From:   accountNames[t.FromAccountID],
			To:     accountNames[t.ToAccountID],
			Amount: formatAmount(t.Amount),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "transfers.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "transfers.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) createTransfer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	fromID, err := parseID(r.Form.Get("from_account_id"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid source account</div>`))
		return
	}
	toID, err := parseID(r.Form.Get("to_account_id"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid destination account</div>`))
		return
	}
	amount, err := core.ParseAmount(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}
	date, err := parseDate(r.Form.Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid date</div>`))
		return
	}

	transfer := &core.Transfer{
		OwnerID:       s.ownerID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		Date:          date,
	}

	executed, err := s.ledger.Transfer(r.Context(), transfer)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrSameAccount):
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Source and destination must differ</div>`))
		case errors.Is(err, core.ErrInsufficientFunds):
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Insufficient funds in the source account</div>`))
		case errors.Is(err, core.ErrInvalidAmount), errors.Is(err, core.ErrInvalidDate):
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid transfer data</div>`))
		case errors.Is(err, core.ErrNotFound):
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Unknown account</div>`))
		default:
			slog.ErrorContext(r.Context(), "Transfer error", "error", err, "from", fromID, "to", toID)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<div class="error">Failed to execute transfer</div>`))
		}
		return
	}

	w.Header().Set("HX-Trigger", "transfer:executed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Transferred ` +
		template.HTMLEscapeString(formatAmount(executed.Amount)) + `</div>`))
}
