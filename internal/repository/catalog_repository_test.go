package repository

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	category := &domain.Category{Title: "Electronics", Slug: "electronics"}
	require.NoError(t, repo.CreateCategory(ctx, category))
	assert.NotZero(t, category.ID)

	got, err := repo.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", got.Title)

	category.Title = "Gadgets"
	require.NoError(t, repo.UpdateCategory(ctx, category))

	got, err = repo.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", got.Title)

	list, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteCategory(ctx, category.ID))
	_, err = repo.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.CreateCategory(ctx, &domain.Category{Title: "Books", Slug: "books"}))

	err := repo.CreateCategory(ctx, &domain.Category{Title: "More Books", Slug: "books"})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestCreateProduct_WithImages(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	p := &domain.Product{
		Name:      "Mechanical Keyboard",
		Price:     decimal.RequireFromString("79.99"),
		OldPrice:  decimal.RequireFromString("99.99"),
		Inventory: 10,
		Slug:      "mechanical-keyboard",
	}
	urls := []string{"https://img.example.com/kb-front.jpg", "https://img.example.com/kb-side.jpg"}
	require.NoError(t, repo.CreateProduct(ctx, p, urls))

	got, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, urls[0], got.Images[0].ImageURL)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("79.99")))
}

func TestGetProduct_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts_FilterSearchOrderPaginate(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	category := &domain.Category{Title: "Audio", Slug: "audio"}
	require.NoError(t, repo.CreateCategory(ctx, category))

	mk := func(name string, price, oldPrice string, categoryID *int64) {
		p := &domain.Product{
			Name:        name,
			Description: gofakeit.Sentence(6),
			CategoryID:  categoryID,
			Price:       decimal.RequireFromString(price),
			OldPrice:    decimal.RequireFromString(oldPrice),
			Slug:        gofakeit.UUID(),
		}
		require.NoError(t, repo.CreateProduct(ctx, p, nil))
	}

	mk("Wireless Headphones", "50.00", "80.00", &category.ID)
	mk("Studio Microphone", "120.00", "150.00", &category.ID)
	mk("Desk Lamp", "20.00", "25.00", nil)

	// Filter by category
	page, err := repo.ListProducts(ctx, domain.ProductFilter{CategoryID: &category.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)

	// Price range
	min := decimal.RequireFromString("40.00")
	max := decimal.RequireFromString("60.00")
	page, err = repo.ListProducts(ctx, domain.ProductFilter{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Wireless Headphones", page.Items[0].Name)

	// Search over name and description
	page, err = repo.ListProducts(ctx, domain.ProductFilter{Search: "microph"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Studio Microphone", page.Items[0].Name)

	// Ordering by old_price descending
	page, err = repo.ListProducts(ctx, domain.ProductFilter{OrderBy: "-old_price"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Studio Microphone", page.Items[0].Name)
	assert.Equal(t, "Desk Lamp", page.Items[2].Name)

	// Pagination
	page, err = repo.ListProducts(ctx, domain.ProductFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Len(t, page.Items, 1)
}

func TestDeleteProduct_InUse(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := seedProduct(t, repo, "10.00")
	seedCartWithItems(t, repo, map[*domain.Product]int{product: 1})

	err := repo.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductInUse)
}

func TestReviewCRUD_ScopedToProduct(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := seedProduct(t, repo, "10.00")
	other := seedProduct(t, repo, "20.00")

	review := &domain.Review{ProductID: product.ID, Name: "Ada", Description: "Works great."}
	require.NoError(t, repo.CreateReview(ctx, review))
	assert.NotZero(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())

	// Scoping: the review is invisible under another product.
	_, err := repo.GetReview(ctx, other.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	got, err := repo.GetReview(ctx, product.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	review.Description = "Still works great."
	require.NoError(t, repo.UpdateReview(ctx, review))

	list, err := repo.ListReviews(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Still works great.", list[0].Description)

	require.NoError(t, repo.DeleteReview(ctx, product.ID, review.ID))
	_, err = repo.GetReview(ctx, product.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.CreateReview(context.Background(), &domain.Review{ProductID: uuid.New(), Name: "Ghost"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
