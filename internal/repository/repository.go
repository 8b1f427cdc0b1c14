package repository

import (
	"context"
	"errors"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("no product for id")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrItemNotFound     = errors.New("item not found in cart")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyCart        = errors.New("cart is empty, nothing to order")
	ErrDuplicateSlug    = errors.New("slug already in use")
	ErrProductInUse     = errors.New("product is referenced by carts or orders")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type CatalogRepo interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product, imageURLs []string) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListReviews(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	GetReview(ctx context.Context, productID uuid.UUID, reviewID int64) (*domain.Review, error)
	CreateReview(ctx context.Context, r *domain.Review) error
	UpdateReview(ctx context.Context, r *domain.Review) error
	DeleteReview(ctx context.Context, productID uuid.UUID, reviewID int64) error
}

type CartRepo interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error)
	DeleteCart(ctx context.Context, cartID uuid.UUID) error
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
}

type OrderRepo interface {
	// PlaceOrder converts a cart into an order as one transaction: creates the
	// order, snapshots the cart items, enqueues a confirmation notification and
	// deletes the cart. On any failure nothing is visible and the cart is intact.
	PlaceOrder(ctx context.Context, cartID uuid.UUID, ownerID, ownerEmail string) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
}

// Notification is one row of the confirmation outbox.
type Notification struct {
	ID      int64
	OrderID uuid.UUID
	Status  string
}

const (
	NotificationPending = "PENDING"
	NotificationSent    = "SENT"
	NotificationFailed  = "FAILED"
)

type NotificationRepo interface {
	GetPendingNotifications(ctx context.Context, limit int) ([]*Notification, error)
	MarkNotificationSent(ctx context.Context, id int64) error
	MarkNotificationFailed(ctx context.Context, id int64) error
}
