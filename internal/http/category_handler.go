package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	catalog repository.CatalogRepo
}

func NewCategoryHandler(catalog repository.CatalogRepo) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

type CategoryRequestDTO struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseCategoryID(w, r)
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	req, ok := decodeCategory(w, r)
	if !ok {
		return
	}

	category := &domain.Category{Title: req.Title, Slug: req.Slug}
	if err := h.catalog.CreateCategory(r.Context(), category); err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	id, ok := parseCategoryID(w, r)
	if !ok {
		return
	}
	req, ok := decodeCategory(w, r)
	if !ok {
		return
	}

	category := &domain.Category{ID: id, Title: req.Title, Slug: req.Slug}
	if err := h.catalog.UpdateCategory(r.Context(), category); err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	id, ok := parseCategoryID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		handleRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCategory(w http.ResponseWriter, r *http.Request) (CategoryRequestDTO, bool) {
	var req CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if req.Title == "" || req.Slug == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "title and slug are required")
		return req, false
	}
	return req, true
}

func parseCategoryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "category id must be a positive integer")
		return 0, false
	}
	return id, true
}

// requireStaff gates the admin-mutated catalog surface.
func requireStaff(w http.ResponseWriter, r *http.Request) bool {
	requester, ok := requesterFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return false
	}
	if !requester.IsStaff {
		respondError(w, http.StatusForbidden, "permission_denied", "staff access required")
		return false
	}
	return true
}
