package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func (r *Repository) CreateCart(ctx context.Context) (*domain.Cart, error) {
	cart := &domain.Cart{
		ID:         uuid.New(),
		GrandTotal: decimal.Zero,
	}

	query := `INSERT INTO carts (id) VALUES ($1) RETURNING created_at`
	if err := r.db.QueryRowContext(ctx, query, cart.ID).Scan(&cart.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert cart: %w", err)
	}

	return cart, nil
}

func (r *Repository) GetCart(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error) {
	cart := &domain.Cart{ID: cartID}

	err := r.db.QueryRowContext(ctx, `SELECT created_at FROM carts WHERE id = $1`, cartID).
		Scan(&cart.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}

	query := `SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
	          FROM cart_items ci
	          JOIN products p ON p.id = ci.product_id
	          WHERE ci.cart_id = $1
	          ORDER BY ci.id`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	cart.GrandTotal = decimal.Zero
	for rows.Next() {
		item := domain.CartItem{CartID: cartID}
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		item.SubTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		cart.GrandTotal = cart.GrandTotal.Add(item.SubTotal)
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return cart, nil
}

func (r *Repository) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

// AddItem upserts a line item: at most one row exists per (cart, product), and
// re-adding a product increments its quantity instead of creating a duplicate.
func (r *Repository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	// Explicit existence check so an unknown product reads as a validation
	// error, not as a masked storage fault.
	var productExists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).
		Scan(&productExists)
	if err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if !productExists {
		return nil, ErrProductNotFound
	}

	query := `INSERT INTO cart_items (cart_id, product_id, quantity)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (cart_id, product_id)
	          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	          RETURNING id, quantity`

	item := &domain.CartItem{CartID: cartID, ProductID: productID}
	err = r.db.QueryRowContext(ctx, query, cartID, productID, quantity).
		Scan(&item.ID, &item.Quantity)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	if err := r.fillItemPrice(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*domain.CartItem, error) {
	query := `UPDATE cart_items SET quantity = $1
	          WHERE id = $2 AND cart_id = $3
	          RETURNING product_id`

	item := &domain.CartItem{ID: itemID, CartID: cartID, Quantity: quantity}
	err := r.db.QueryRowContext(ctx, query, quantity, itemID, cartID).Scan(&item.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	if err := r.fillItemPrice(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) fillItemPrice(ctx context.Context, item *domain.CartItem) error {
	err := r.db.QueryRowContext(ctx, `SELECT name, price FROM products WHERE id = $1`, item.ProductID).
		Scan(&item.ProductName, &item.UnitPrice)
	if err != nil {
		return fmt.Errorf("query product price: %w", err)
	}
	item.SubTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return nil
}
