package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PlaceOrder is the cart-to-order conversion engine. The whole conversion runs
// in one transaction: either the order with all its item snapshots exists and
// the cart is gone, or the failure leaves the cart exactly as it was. Locking
// the cart row serializes concurrent conversions and cart mutations against
// each other, so the snapshot is a consistent point-in-time view.
func (r *Repository) PlaceOrder(ctx context.Context, cartID uuid.UUID, ownerID, ownerEmail string) (_ *domain.Order, txErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				txErr = errors.Join(txErr, fmt.Errorf("tx rollback: %w", rbErr))
			}
		}
	}()

	var locked uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock cart: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY id FOR UPDATE`, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}

	type snapshot struct {
		productID uuid.UUID
		quantity  int
	}
	var snapshots []snapshot
	for rows.Next() {
		var s snapshot
		if err := rows.Scan(&s.productID, &s.quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if len(snapshots) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		Status:     domain.OrderStatusPending,
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (id, owner_id, owner_email, status) VALUES ($1, $2, $3, $4) RETURNING placed_at`,
		order.ID, order.OwnerID, order.OwnerEmail, order.Status.String()).
		Scan(&order.PlacedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	// Bulk-persist the snapshots in one statement.
	productIDs := make([]uuid.UUID, len(snapshots))
	quantities := make([]int64, len(snapshots))
	for i, s := range snapshots {
		productIDs[i] = s.productID
		quantities[i] = int64(s.quantity)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO order_items (order_id, product_id, quantity)
		 SELECT $1, unnest($2::uuid[]), unnest($3::bigint[])`,
		order.ID, pq.Array(productIDs), pq.Array(quantities))
	if err != nil {
		return nil, fmt.Errorf("insert order items: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO notification_outbox (order_id) VALUES ($1)`, order.ID)
	if err != nil {
		return nil, fmt.Errorf("enqueue notification: %w", err)
	}

	// Cascade removes the cart items too.
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return nil, fmt.Errorf("delete cart: %w", err)
	}

	order.Items, err = queryOrderItems(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return order, nil
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{ID: id}
	var status string

	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id, owner_email, status, placed_at FROM orders WHERE id = $1`, id).
		Scan(&order.OwnerID, &order.OwnerEmail, &status, &order.PlacedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	order.Items, err = queryOrderItems(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) ListOrdersByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error) {
	return r.listOrders(ctx,
		`SELECT id, owner_id, owner_email, status, placed_at FROM orders WHERE owner_id = $1 ORDER BY placed_at DESC`,
		ownerID)
}

func (r *Repository) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return r.listOrders(ctx,
		`SELECT id, owner_id, owner_email, status, placed_at FROM orders ORDER BY placed_at DESC`)
}

func (r *Repository) listOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		var status string
		if err := rows.Scan(&order.ID, &order.OwnerID, &order.OwnerEmail, &status, &order.PlacedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, order := range orders {
		order.Items, err = queryOrderItems(ctx, r.db, order.ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryOrderItems(ctx context.Context, q querier, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `SELECT oi.id, oi.product_id, p.name, p.price, oi.quantity
	          FROM order_items oi
	          JOIN products p ON p.id = oi.product_id
	          WHERE oi.order_id = $1
	          ORDER BY oi.id`

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		item := domain.OrderItem{OrderID: orderID}
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}
