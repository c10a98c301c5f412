// Package http serves the server-rendered web UI. Handlers answer full pages
// on GET and HTML fragments on POST, so forms can swap results in place.
package http

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cassa/internal/core"
	"cassa/internal/services"
	"cassa/internal/storage"
	appweb "cassa/web"
)

// Store is the slice of the repository the web handlers read and write.
// Balance-mutating operations go through the TransactionService instead.
type Store interface {
	CreateAccount(ctx context.Context, a *core.Account) (int64, error)
	AccountByID(ctx context.Context, ownerID, accountID int64) (*core.Account, error)
	Accounts(ctx context.Context, ownerID int64) ([]core.Account, error)
	TotalBalance(ctx context.Context, ownerID int64) (core.Money, error)

	CreateCategory(ctx context.Context, c *core.Category) (int64, error)
	Categories(ctx context.Context, ownerID int64) ([]core.Category, error)

	Transactions(ctx context.Context, ownerID int64, f storage.TransactionFilter) ([]core.Transaction, error)
	TransactionByID(ctx context.Context, ownerID, transactionID int64) (*core.Transaction, error)
	Transfers(ctx context.Context, ownerID int64) ([]core.Transfer, error)

	CreateRule(ctx context.Context, rule *core.Rule) (int64, error)
	Rules(ctx context.Context, ownerID int64) ([]core.Rule, error)
	RuleByID(ctx context.Context, ownerID, ruleID int64) (*core.Rule, error)
	CreateBudget(ctx context.Context, b *core.Budget) (int64, error)
	Budgets(ctx context.Context, ownerID int64) ([]core.Budget, error)

	CreateRecurringTransaction(ctx context.Context, rec *core.RecurringTransaction) (int64, error)
	RecurringTransactions(ctx context.Context, ownerID int64) ([]core.RecurringTransaction, error)
}

type Server struct {
	http.Server
	templates *template.Template

	store     Store
	ledger    *services.TransactionService
	ownerID   int64

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, store Store, ledger *services.TransactionService, ownerID int64) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       store,
		ledger:      ledger,
		ownerID:     ownerID,
		rateLimiter: newRateLimiter(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/accounts", s.withSecurityHeaders(s.handleCreateAccount))
	mux.HandleFunc("/categories", s.withSecurityHeaders(s.handleCategories))

	mux.HandleFunc("/transactions", s.withSecurityHeaders(s.handleTransactions))
	mux.HandleFunc("/transactions/update", s.withSecurityHeaders(s.handleUpdateTransaction))
	mux.HandleFunc("/transactions/delete", s.withSecurityHeaders(s.handleDeleteTransaction))

	mux.HandleFunc("/transfers", s.withSecurityHeaders(s.handleTransfers))

	mux.HandleFunc("/budgets", s.withSecurityHeaders(s.handleBudgets))
	mux.HandleFunc("/rules", s.withSecurityHeaders(s.handleCreateRule))

	mux.HandleFunc("/recurring", s.withSecurityHeaders(s.handleRecurring))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientIPFrom(r)

		// Generate request ID for tracing
		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Apply rate limiting to mutating requests
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Capture status code for the completion log
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleIndex renders the dashboard: accounts with balances, net worth, and
// the most recent transactions.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	accounts, err := s.store.Accounts(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Account list error", "error", err)
		http.Error(w, "failed to load accounts", http.StatusInternalServerError)
		return
	}
	total, err := s.store.TotalBalance(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Total balance error", "error", err)
	}
	recent, err := s.store.Transactions(r.Context(), s.ownerID, storage.TransactionFilter{Limit: 10})
	if err != nil {
		slog.ErrorContext(r.Context(), "Recent transaction list error", "error", err)
	}
	categories, err := s.store.Categories(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list error", "error", err)
	}

	type accountRow struct {
		ID      int64
		Name    string
		Balance string
	}
	type transactionRow struct {
		ID          int64
		Date        string
		Description string
		Type        string
		Amount      string
	}
	data := struct {
		Today      string
		Total      string
		Accounts   []accountRow
		Recent     []transactionRow
		Categories []core.Category
	}{
		Today: time.Now().Format("2006-01-02"),
		Total: formatAmount(total),
	}
	for _, a := range accounts {
		data.Accounts = append(data.Accounts, accountRow{ID: a.ID, Name: a.Name, Balance: formatAmount(a.Balance)})
	}
	for _, t := range recent {
		data.Recent = append(data.Recent, transactionRow{
			ID:          t.ID,
			Date:        t.Date.String(),
			Description: t.Description,
			Type:        string(t.Type),
			Amount:      formatAmount(t.Amount),
		})
	}
	data.Categories = categories

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
