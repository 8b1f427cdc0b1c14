package service

import (
	"context"
	"log"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/google/uuid"
)

// Requester is the authenticated identity resolved by the upstream auth
// collaborator.
type Requester struct {
	UserID  string
	Email   string
	IsStaff bool
}

type OrderService struct {
	repo  repository.OrderRepo
	carts *CartService
}

func NewOrderService(repo repository.OrderRepo, carts *CartService) *OrderService {
	return &OrderService{repo: repo, carts: carts}
}

// PlaceOrder converts the cart into an order. The repository guarantees the
// conversion is all-or-nothing; this layer only attributes ownership and drops
// the now-stale cart cache entry.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID uuid.UUID, requester Requester) (*domain.Order, error) {
	order, err := s.repo.PlaceOrder(ctx, cartID, requester.UserID, requester.Email)
	if err != nil {
		return nil, err
	}

	log.Printf("order %v placed from cart %v by user %v", order.ID, cartID, requester.UserID)
	s.carts.invalidateCache(cartID)
	return order, nil
}

// GetOrder hides non-owned orders from non-staff requesters behind a
// not-found error so order ids leak nothing.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID, requester Requester) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !requester.IsStaff && order.OwnerID != requester.UserID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns all orders for staff, only the requester's own otherwise.
func (s *OrderService) ListOrders(ctx context.Context, requester Requester) ([]*domain.Order, error) {
	if requester.IsStaff {
		return s.repo.ListAllOrders(ctx)
	}
	return s.repo.ListOrdersByOwner(ctx, requester.UserID)
}
