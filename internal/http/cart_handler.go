package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/flossiendabambi/alx-project-nexus/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequestDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.CreateCart(r.Context())
	if err != nil {
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	if err := h.carts.DeleteCart(r.Context(), cartID); err != nil {
		handleRepoError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart.Items)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	item, err := h.carts.AddItem(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		// An unknown product is a validation failure of the request body, not
		// a missing resource.
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusBadRequest, "invalid_product_id", err.Error())
			return
		}
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	item, err := h.carts.UpdateItemQuantity(r.Context(), cartID, itemID, req.Quantity)
	if err != nil {
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseCartID(w, r)
	if !ok {
		return
	}
	itemID, ok := parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(r.Context(), cartID, itemID); err != nil {
		handleRepoError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseCartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	cartID, err := uuid.Parse(chi.URLParam(r, "cartID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_cart_id", "cart id must be a valid UUID")
		return uuid.Nil, false
	}
	return cartID, true
}

func parseItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a positive integer")
		return 0, false
	}
	return itemID, true
}
