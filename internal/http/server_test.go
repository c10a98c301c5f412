package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cassa/internal/core"
	"cassa/internal/storage"
)

// fakeStore backs handler tests with in-memory slices.
type fakeStore struct {
	accounts   []core.Account
	categories []core.Category
	rules      []core.Rule

	createdCategories []core.Category
	createdRules      []core.Rule
	failCreate        bool
}

func (f *fakeStore) CreateAccount(_ context.Context, a *core.Account) (int64, error) {
	f.accounts = append(f.accounts, *a)
	return int64(len(f.accounts)), nil
}

func (f *fakeStore) AccountByID(_ context.Context, _, id int64) (*core.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) Accounts(_ context.Context, _ int64) ([]core.Account, error) {
	return f.accounts, nil
}

func (f *fakeStore) TotalBalance(_ context.Context, _ int64) (core.Money, error) {
	total := core.Money{}
	for _, a := range f.accounts {
		total = total.Add(a.Balance)
	}
	return total, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, c *core.Category) (int64, error) {
	if f.failCreate {
		return 0, context.DeadlineExceeded
	}
	f.createdCategories = append(f.createdCategories, *c)
	return int64(len(f.createdCategories)), nil
}

func (f *fakeStore) Categories(_ context.Context, _ int64) ([]core.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) Transactions(_ context.Context, _ int64, _ storage.TransactionFilter) ([]core.Transaction, error) {
	return nil, nil
}

func (f *fakeStore) TransactionByID(_ context.Context, _, _ int64) (*core.Transaction, error) {
	return nil, core.ErrNotFound
}

func (f *fakeStore) Transfers(_ context.Context, _ int64) ([]core.Transfer, error) {
	return nil, nil
}

func (f *fakeStore) CreateRule(_ context.Context, rule *core.Rule) (int64, error) {
	f.createdRules = append(f.createdRules, *rule)
	return int64(len(f.createdRules)), nil
}

func (f *fakeStore) Rules(_ context.Context, _ int64) ([]core.Rule, error) {
	return f.rules, nil
}

func (f *fakeStore) RuleByID(_ context.Context, _, id int64) (*core.Rule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) CreateBudget(_ context.Context, _ *core.Budget) (int64, error) {
	return 1, nil
}

func (f *fakeStore) Budgets(_ context.Context, _ int64) ([]core.Budget, error) {
	return nil, nil
}

func (f *fakeStore) CreateRecurringTransaction(_ context.Context, _ *core.RecurringTransaction) (int64, error) {
	return 1, nil
}

func (f *fakeStore) RecurringTransactions(_ context.Context, _ int64) ([]core.RecurringTransaction, error) {
	return nil, nil
}

func newTestServer(t *testing.T, store *fakeStore) *Server {
	t.Helper()
	s := NewServer(":0", store, nil, 1)
	t.Cleanup(func() { s.rateLimiter.stop() })
	if s.templates == nil {
		t.Fatal("templates failed to parse")
	}
	return s
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Server.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestIndexRendersAccounts(t *testing.T) {
	store := &fakeStore{
		accounts: []core.Account{
			{ID: 1, OwnerID: 1, Name: "Checking", Balance: core.MoneyFromCents(12550)},
			{ID: 2, OwnerID: 1, Name: "Savings", Balance: core.MoneyFromCents(500000)},
		},
	}
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Checking", "Savings", "€125.50", "€5125.50"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestIndexUnknownPathIs404(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /nonexistent = %d, want 404", rec.Code)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	tests := []struct {
		name     string
		form     url.Values
		wantCode int
	}{
		{
			name:     "valid account",
			form:     url.Values{"name": {"Checking"}, "balance": {"100.00"}},
			wantCode: http.StatusOK,
		},
		{
			name:     "empty name",
			form:     url.Values{"name": {"   "}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "bad balance",
			form:     url.Values{"name": {"Checking"}, "balance": {"lots"}},
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(s, "/accounts", tt.form)
			if rec.Code != tt.wantCode {
				t.Errorf("POST /accounts = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestCreateAccountRequiresPost(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /accounts = %d, want 405", rec.Code)
	}
}

func TestCreateRule(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store)

	rec := postForm(s, "/rules", url.Values{"savings": {"50"}, "needs": {"30"}, "wants": {"20"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /rules = %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.createdRules) != 1 {
		t.Fatalf("created %d rules, want 1", len(store.createdRules))
	}
	rule := store.createdRules[0]
	if rule.Savings != 50 || rule.Needs != 30 || rule.Wants != 20 {
		t.Errorf("rule = %d/%d/%d, want 50/30/20", rule.Savings, rule.Needs, rule.Wants)
	}
	if !strings.Contains(rec.Body.String(), "50/30/20") {
		t.Errorf("response missing rule label: %s", rec.Body.String())
	}
}

func TestCreateRuleRejectsOutOfRange(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	rec := postForm(s, "/rules", url.Values{"savings": {"120"}, "needs": {"30"}, "wants": {"20"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("POST /rules with 120%% = %d, want 422", rec.Code)
	}
}

func TestCreateCategory(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store)

	rec := postForm(s, "/categories", url.Values{"name": {"Groceries"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /categories = %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.createdCategories) != 1 || store.createdCategories[0].Name != "Groceries" {
		t.Errorf("created categories = %+v, want one named Groceries", store.createdCategories)
	}
}

func TestListCategoriesJSON(t *testing.T) {
	store := &fakeStore{
		categories: []core.Category{{ID: 1, OwnerID: 1, Name: "Rent"}},
	}
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /categories = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), `"Rent"`) {
		t.Errorf("JSON body missing category: %s", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}
