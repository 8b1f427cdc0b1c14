package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const defaultPageSize = 20

func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, slug FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	c := &domain.Category{ID: id}
	err := r.db.QueryRowContext(ctx, `SELECT title, slug FROM categories WHERE id = $1`, id).
		Scan(&c.Title, &c.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return c, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (title, slug) VALUES ($1, $2) RETURNING id`, c.Title, c.Slug).
		Scan(&c.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET title = $1, slug = $2 WHERE id = $3`, c.Title, c.Slug, c.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res, ErrCategoryNotFound)
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res, ErrCategoryNotFound)
}

// ListProducts applies the filter, search, ordering and page-number pagination
// in SQL. The WHERE clause is assembled from the populated filter fields only.
func (r *Repository) ListProducts(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		conds = append(conds, "category_id = "+arg(*filter.CategoryID))
	}
	if filter.PriceMin != nil {
		conds = append(conds, "price >= "+arg(*filter.PriceMin))
	}
	if filter.PriceMax != nil {
		conds = append(conds, "price <= "+arg(*filter.PriceMax))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	orderBy := " ORDER BY id"
	switch filter.OrderBy {
	case "old_price":
		orderBy = " ORDER BY old_price ASC, id"
	case "-old_price":
		orderBy = " ORDER BY old_price DESC, id"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	result := &domain.ProductPage{Page: page, PageSize: pageSize}

	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&result.TotalCount); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT id, name, description, category_id, price, old_price, inventory, slug, created_at
	          FROM products` + where + orderBy +
		fmt.Sprintf(" LIMIT %s OFFSET %s", arg(pageSize), arg((page-1)*pageSize))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &domain.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID,
			&p.Price, &p.OldPrice, &p.Inventory, &p.Slug, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result.Items = append(result.Items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, p := range result.Items {
		p.Images, err = r.queryProductImages(ctx, p.ID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p := &domain.Product{ID: id}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, description, category_id, price, old_price, inventory, slug, created_at
		 FROM products WHERE id = $1`, id).
		Scan(&p.Name, &p.Description, &p.CategoryID, &p.Price, &p.OldPrice, &p.Inventory, &p.Slug, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	p.Images, err = r.queryProductImages(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProduct persists the product and all its image URLs in one transaction.
func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product, imageURLs []string) (txErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				txErr = errors.Join(txErr, fmt.Errorf("tx rollback: %w", rbErr))
			}
		}
	}()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO products (id, name, description, category_id, price, old_price, inventory, slug)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`,
		p.ID, p.Name, p.Description, p.CategoryID, p.Price, p.OldPrice, p.Inventory, p.Slug).
		Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	for _, url := range imageURLs {
		img := domain.ProductImage{ProductID: p.ID, ImageURL: url}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO product_images (product_id, image_url) VALUES ($1, $2) RETURNING id`,
			p.ID, url).Scan(&img.ID)
		if err != nil {
			return fmt.Errorf("insert product image: %w", err)
		}
		p.Images = append(p.Images, img)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, category_id = $3, price = $4,
		        old_price = $5, inventory = $6, slug = $7
		 WHERE id = $8`,
		p.Name, p.Description, p.CategoryID, p.Price, p.OldPrice, p.Inventory, p.Slug, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res, ErrProductNotFound)
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrProductInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res, ErrProductNotFound)
}

func (r *Repository) queryProductImages(ctx context.Context, productID uuid.UUID) ([]domain.ProductImage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, image_url FROM product_images WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("query product images: %w", err)
	}
	defer rows.Close()

	var images []domain.ProductImage
	for rows.Next() {
		img := domain.ProductImage{ProductID: productID}
		if err := rows.Scan(&img.ID, &img.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return images, nil
}

func (r *Repository) ListReviews(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM reviews WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		rev := &domain.Review{ProductID: productID}
		if err := rows.Scan(&rev.ID, &rev.Name, &rev.Description, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return reviews, nil
}

func (r *Repository) GetReview(ctx context.Context, productID uuid.UUID, reviewID int64) (*domain.Review, error) {
	rev := &domain.Review{ID: reviewID, ProductID: productID}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, description, created_at FROM reviews WHERE id = $1 AND product_id = $2`,
		reviewID, productID).
		Scan(&rev.Name, &rev.Description, &rev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query review: %w", err)
	}
	return rev, nil
}

func (r *Repository) CreateReview(ctx context.Context, rev *domain.Review) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO reviews (product_id, name, description) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		rev.ProductID, rev.Name, rev.Description).
		Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrProductNotFound
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *Repository) UpdateReview(ctx context.Context, rev *domain.Review) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET name = $1, description = $2 WHERE id = $3 AND product_id = $4`,
		rev.Name, rev.Description, rev.ID, rev.ProductID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return requireAffected(res, ErrReviewNotFound)
}

func (r *Repository) DeleteReview(ctx context.Context, productID uuid.UUID, reviewID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = $1 AND product_id = $2`, reviewID, productID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return requireAffected(res, ErrReviewNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
