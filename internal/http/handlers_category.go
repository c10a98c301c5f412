package http

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"cassa/internal/core"
)

// handleCategories lists categories as JSON on GET and creates one on POST.
// The list feeds the category dropdowns in the transaction forms.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listCategories(w, r)
	case http.MethodPost:
		s.createCategory(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context(), s.ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list error", "error", err)
		http.Error(w, "failed to load categories", http.StatusInternalServerError)
		return
	}

	type categoryJSON struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		slog.ErrorContext(r.Context(), "Category encode error", "error", err)
	}
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	category := core.Category{
		OwnerID:     s.ownerID,
		Name:        sanitizeInput(r.Form.Get("name")),
		Description: sanitizeInput(r.Form.Get("description")),
	}
	if err := category.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	id, err := s.store.CreateCategory(r.Context(), &category)
	if err != nil {
		// UNIQUE(owner_id, name) makes duplicates a storage error
		slog.ErrorContext(r.Context(), "Category create error", "error", err, "category", category.Name)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Failed to create category (name may already exist)</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Category created", "category_id", id, "name", category.Name)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Category created: ` +
		template.HTMLEscapeString(category.Name) + `</div>`))
}
