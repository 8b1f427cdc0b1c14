package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogRepoMock struct {
	repository.CatalogRepo

	page    *domain.ProductPage
	product *domain.Product
	err     error

	lastFilter domain.ProductFilter
}

func (m *catalogRepoMock) ListProducts(_ context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func (m *catalogRepoMock) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.product == nil || m.product.ID != id {
		return nil, repository.ErrProductNotFound
	}
	return m.product, nil
}

func (m *catalogRepoMock) CreateProduct(_ context.Context, p *domain.Product, _ []string) error {
	if m.err != nil {
		return m.err
	}
	p.ID = uuid.New()
	m.product = p
	return nil
}

func newProductRouter(repo *catalogRepoMock) chi.Router {
	handler := NewProductHandler(repo)

	r := chi.NewRouter()
	r.Use(AuthMiddleware)
	r.Get("/products", handler.List)
	r.Post("/products", handler.Create)
	r.Get("/products/{productID}", handler.Get)
	return r
}

func TestListProducts_ParsesFilters(t *testing.T) {
	repo := &catalogRepoMock{page: &domain.ProductPage{Page: 1, PageSize: 20}}
	router := newProductRouter(repo)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET",
		"/products?category_id=3&price_min=10.50&price_max=99&search=lamp&ordering=-old_price&page=2&page_size=5", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, repo.lastFilter.CategoryID)
	assert.Equal(t, int64(3), *repo.lastFilter.CategoryID)
	require.NotNil(t, repo.lastFilter.PriceMin)
	require.NotNil(t, repo.lastFilter.PriceMax)
	assert.True(t, repo.lastFilter.PriceMin.Equal(decimal.RequireFromString("10.50")))
	assert.True(t, repo.lastFilter.PriceMax.Equal(decimal.NewFromInt(99)))
	assert.Equal(t, "lamp", repo.lastFilter.Search)
	assert.Equal(t, "-old_price", repo.lastFilter.OrderBy)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, 5, repo.lastFilter.PageSize)
}

func TestListProducts_BadPriceFilter(t *testing.T) {
	router := newProductRouter(&catalogRepoMock{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products?price_min=cheap", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newProductRouter(&catalogRepoMock{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateProduct_RequiresStaff(t *testing.T) {
	router := newProductRouter(&catalogRepoMock{})

	body, _ := json.Marshal(ProductRequestDTO{Name: "Lamp", Slug: "lamp", Price: decimal.NewFromInt(20)})

	// Anonymous
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/products", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated but not staff
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authed(httptest.NewRequest("POST", "/products", bytes.NewReader(body)), "user-1", false))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// Staff
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authed(httptest.NewRequest("POST", "/products", bytes.NewReader(body)), "admin", true))
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestCreateProduct_Validation(t *testing.T) {
	router := newProductRouter(&catalogRepoMock{})

	body, _ := json.Marshal(ProductRequestDTO{Name: "", Slug: "lamp"})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authed(httptest.NewRequest("POST", "/products", bytes.NewReader(body)), "admin", true))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
