package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusComplete OrderStatus = "COMPLETE"
	OrderStatusFailed   OrderStatus = "FAILED"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Order is the immutable result of converting a cart. Only status may change
// after creation.
type Order struct {
	ID         uuid.UUID   `json:"id"`
	OwnerID    string      `json:"owner"`
	OwnerEmail string      `json:"-"`
	Status     OrderStatus `json:"pending_status"`
	Items      []OrderItem `json:"items"`
	PlacedAt   time.Time   `json:"placed_at"`
}

// OrderItem is a frozen copy of a cart item taken at conversion time. The unit
// price is still read live through the product reference at display time.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}
