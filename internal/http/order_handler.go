package http

import (
	"encoding/json"
	"net/http"

	"github.com/flossiendabambi/alx-project-nexus/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type CreateOrderRequestDTO struct {
	CartID uuid.UUID `json:"cart_id"`
}

// CreateOrder triggers the cart-to-order conversion. Anonymous requests are
// rejected; the order must be owned by an authenticated requester.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CartID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "invalid_cart_id", "cart_id is required")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), req.CartID, requester)
	if err != nil {
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a valid UUID")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID, requester)
	if err != nil {
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), requester)
	if err != nil {
		handleRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
