package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"cassa/internal/core"
)

// handleBudgets renders budgets with their rule splits on GET and creates a
// budget on POST.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBudgets(w, r)
	case http.MethodPost:
		s.createBudget(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	budgets, err := s.store.Budgets(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Budget list error", "error", err)
		http.Error(w, "failed to load budgets", http.StatusInternalServerError)
		return
	}
	rules, err := s.store.Rules(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Rule list error", "error", err)
	}

	type budgetRow struct {
		ID      int64
		Amount  string
		Rule    string // "50/30/20" or "" when no rule is attached
		Savings string
		Needs   string
		Wants   string
	}
	type ruleRow struct {
		ID      int64
		Savings uint
		Needs   uint
		Wants   uint
	}
	data := struct {
		Budgets []budgetRow
		Rules   []ruleRow
	}{}
	for _, b := range budgets {
		row := budgetRow{ID: b.ID, Amount: formatAmount(b.Amount)}
		if split := b.Split(); split != nil {
			row.Rule = ruleLabel(b.Rule)
			row.Savings = formatAmount(split.Savings)
			row.Needs = formatAmount(split.Needs)
			row.Wants = formatAmount(split.Wants)
		}
		data.Budgets = append(data.Budgets, row)
	}
	for _, rule := range rules {
		data.Rules = append(data.Rules, ruleRow{ID: rule.ID, Savings: rule.Savings, Needs: rule.Needs, Wants: rule.Wants})
	}

	if err := s.templates.ExecuteTemplate(w, "budgets.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "budgets.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ruleLabel(r *core.Rule) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(int(r.Savings)) + "/" + strconv.Itoa(int(r.Needs)) + "/" + strconv.Itoa(int(r.Wants))
}

func (s *Server) createBudget(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	amount, err := core.ParseAmount(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	budget := core.Budget{OwnerID: s.ownerID, Amount: amount}

	// The rule is optional; a budget without one has no split.
	if v := strings.TrimSpace(r.Form.Get("rule_id")); v != "" {
		ruleID, err := parseID(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid rule</div>`))
			return
		}
		rule, err := s.store.RuleByID(r.Context(), s.ownerID, ruleID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(`<div class="error">Rule not found</div>`))
				return
			}
			slog.ErrorContext(r.Context(), "Rule load error", "error", err, "rule_id", ruleID)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<div class="error">Failed to load rule</div>`))
			return
		}
		budget.Rule = rule
	}

	id, err := s.store.CreateBudget(r.Context(), &budget)
	if err != nil {
		slog.ErrorContext(r.Context(), "Budget create error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to create budget</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Budget created", "budget_id", id, "amount", budget.Amount.String())
	w.Header().Set("HX-Trigger", "budget:created")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Budget created: ` +
		template.HTMLEscapeString(formatAmount(budget.Amount)) + `</div>`))
}

// handleCreateRule stores a savings/needs/wants allocation rule. The three
// percentages are stored as given, even when they do not sum to 100.
func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
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

	savings, err := parsePercent(r.Form.Get("savings"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid savings percentage</div>`))
		return
	}
	needs, err := parsePercent(r.Form.Get("needs"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid needs percentage</div>`))
		return
	}
	wants, err := parsePercent(r.Form.Get("wants"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid wants percentage</div>`))
		return
	}

	rule := core.Rule{OwnerID: s.ownerID, Savings: savings, Needs: needs, Wants: wants}
	id, err := s.store.CreateRule(r.Context(), &rule)
	if err != nil {
		slog.ErrorContext(r.Context(), "Rule create error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to create rule</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Rule created", "rule_id", id,
		"savings", savings, "needs", needs, "wants", wants)
	w.Header().Set("HX-Trigger", "rule:created")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Rule created: ` +
		template.HTMLEscapeString(ruleLabel(&rule)) + `</div>`))
}
