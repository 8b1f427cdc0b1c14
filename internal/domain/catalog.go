package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  *int64          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	OldPrice    decimal.Decimal `json:"old_price"`
	Inventory   int             `json:"inventory"`
	Slug        string          `json:"slug"`
	Images      []ProductImage  `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProductImage struct {
	ID        int64     `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	ImageURL  string    `json:"image"`
}

type Review struct {
	ID          int64     `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"date_created"`
}

// ProductFilter narrows down product listings. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID *int64
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Search     string // matched against name and description
	OrderBy    string // "old_price" or "-old_price"
	Page       int
	PageSize   int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items      []*Product `json:"results"`
	TotalCount int        `json:"count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}
