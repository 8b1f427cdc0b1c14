package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	catalog repository.CatalogRepo
}

func NewProductHandler(catalog repository.CatalogRepo) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type ProductRequestDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  *int64          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	OldPrice    decimal.Decimal `json:"old_price"`
	Inventory   int             `json:"inventory"`
	Slug        string          `json:"slug"`
	Images      []string        `json:"uploaded_images"`
}

// List supports category/price filtering, name+description search, ordering
// by old_price and page-number pagination, all via query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Search:  q.Get("search"),
		OrderBy: q.Get("ordering"),
	}

	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be an integer")
			return
		}
		filter.CategoryID = &id
	}
	if v := q.Get("price_min"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_price_min", "price_min must be a number")
			return
		}
		filter.PriceMin = &min
	}
	if v := q.Get("price_max"); v != "" {
		max, err := decimal.NewFromString(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_price_max", "price_max must be a number")
			return
		}
		filter.PriceMax = &max
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("page_size"); v != "" {
		filter.PageSize, _ = strconv.Atoi(v)
	}

	page, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProductID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Inventory:   req.Inventory,
		Slug:        req.Slug,
	}
	if err := h.catalog.CreateProduct(r.Context(), product, req.Images); err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	id, ok := parseProductID(w, r)
	if !ok {
		return
	}
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product := &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Inventory:   req.Inventory,
		Slug:        req.Slug,
	}
	if err := h.catalog.UpdateProduct(r.Context(), product); err != nil {
		handleRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	id, ok := parseProductID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		handleRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (ProductRequestDTO, bool) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if req.Name == "" || req.Slug == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "name and slug are required")
		return req, false
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return req, false
	}
	return req, true
}

func parseProductID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
