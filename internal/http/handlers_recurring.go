package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"cassa/internal/core"
)

// handleRecurring lists recurring templates on GET and creates one on POST.
// Spawning transactions from due templates is the recurring worker's job.
func (s *Server) handleRecurring(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listRecurring(w, r)
	case http.MethodPost:
		s.createRecurring(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listRecurring(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	templates, err := s.store.RecurringTransactions(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Recurring list error", "error", err)
		http.Error(w, "failed to load recurring transactions", http.StatusInternalServerError)
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

	type row struct {
		ID          int64
		Description string
		Account     string
		Type        string
		Amount      string
		Interval    string
		Next        string
	}
	data := struct {
		Rows       []row
		Accounts   []core.Account
		Categories []core.Category
	}{Accounts: accounts, Categories: categories}
	for _, rec := range templates {
		data.Rows = append(data.Rows, row{
			ID:          rec.ID,
			Description: rec.Description,
			Account:     accountNames[rec.AccountID],
			Type:        string(rec.Type),
			Amount:      formatAmount(rec.Amount),
			Interval:    string(rec.Interval),
			Next:        rec.NextOccurrence.String(),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "recurring.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "recurring.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) createRecurring(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	accountID, err := parseID(r.Form.Get("account_id"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid account</div>`))
		return
	}
	categoryID, err := parseID(r.Form.Get("category_id"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid category</div>`))
		return
	}
	amount, err := core.ParseAmount(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}
	start, err := parseDate(r.Form.Get("start_date"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid start date</div>`))
		return
	}

	rec := core.RecurringTransaction{
		OwnerID:        s.ownerID,
		AccountID:      accountID,
		CategoryID:     categoryID,
		Amount:         amount,
		Type:           core.TransactionType(r.Form.Get("type")),
		Description:    sanitizeInput(r.Form.Get("description")),
		Interval:       core.Interval(r.Form.Get("interval")),
		NextOccurrence: start,
		// The start day anchors monthly schedules, so a template created on
		// the 31st keeps targeting the 31st across short months.
		AnchorDay: start.Day(),
	}
	if err := rec.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	id, err := s.store.CreateRecurringTransaction(r.Context(), &rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Recurring create error", "error", err, "description", rec.Description)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to create recurring transaction</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Recurring transaction created",
		"recurring_id", id, "interval", string(rec.Interval), "next", rec.NextOccurrence.String())
	w.Header().Set("HX-Trigger", "recurring:created")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Scheduled ` + template.HTMLEscapeString(rec.Description) +
		` ` + template.HTMLEscapeString(formatAmount(rec.Amount)) +
		` every ` + template.HTMLEscapeString(string(rec.Interval)) + `</div>`))
}
