package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flossiendabambi/alx-project-nexus/internal/cache"
	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/flossiendabambi/alx-project-nexus/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartRepoMock struct {
	cart *domain.Cart
	err  error
}

func (m *cartRepoMock) CreateCart(context.Context) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *cartRepoMock) GetCart(_ context.Context, cartID uuid.UUID) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil || m.cart.ID != cartID {
		return nil, repository.ErrCartNotFound
	}
	return m.cart, nil
}

func (m *cartRepoMock) DeleteCart(context.Context, uuid.UUID) error {
	return m.err
}

func (m *cartRepoMock) AddItem(_ context.Context, cartID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CartItem{ID: 1, CartID: cartID, ProductID: productID, Quantity: quantity}, nil
}

func (m *cartRepoMock) UpdateItemQuantity(_ context.Context, cartID uuid.UUID, itemID int64, quantity int) (*domain.CartItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CartItem{ID: itemID, CartID: cartID, Quantity: quantity}, nil
}

func (m *cartRepoMock) RemoveItem(context.Context, uuid.UUID, int64) error {
	return m.err
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.Cart, error) { return nil, cache.ErrCacheMiss }
func (noopCache) Set(context.Context, string, *domain.Cart) error   { return nil }
func (noopCache) Delete(context.Context, string) error              { return nil }

func newCartRouter(repo *cartRepoMock) chi.Router {
	handler := NewCartHandler(service.NewCartService(repo, noopCache{}))

	r := chi.NewRouter()
	r.Post("/carts", handler.CreateCart)
	r.Get("/carts/{cartID}", handler.GetCart)
	r.Delete("/carts/{cartID}", handler.DeleteCart)
	r.Get("/carts/{cartID}/items", handler.ListItems)
	r.Post("/carts/{cartID}/items", handler.AddItem)
	r.Patch("/carts/{cartID}/items/{itemID}", handler.UpdateQuantity)
	r.Delete("/carts/{cartID}/items/{itemID}", handler.RemoveItem)
	return r
}

func TestCreateCart(t *testing.T) {
	cartID := uuid.New()
	router := newCartRouter(&cartRepoMock{cart: &domain.Cart{ID: cartID}})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/carts", nil))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, cartID, response.ID)
}

func TestGetCart_Success(t *testing.T) {
	cartID := uuid.New()
	cart := &domain.Cart{
		ID: cartID,
		Items: []domain.CartItem{
			{ID: 1, CartID: cartID, ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		},
		GrandTotal: decimal.NewFromInt(20),
	}
	router := newCartRouter(&cartRepoMock{cart: cart})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/carts/"+cartID.String(), nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, cartID, response.ID)
	assert.Len(t, response.Items, 1)
}

func TestGetCart_BadID(t *testing.T) {
	router := newCartRouter(&cartRepoMock{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/carts/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetCart_NotFound(t *testing.T) {
	router := newCartRouter(&cartRepoMock{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/carts/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddItem_Success(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()
	router := newCartRouter(&cartRepoMock{cart: &domain.Cart{ID: cartID}})

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: productID, Quantity: 2})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", fmt.Sprintf("/carts/%s/items", cartID), bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response domain.CartItem
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, productID, response.ProductID)
	assert.Equal(t, 2, response.Quantity)
}

func TestAddItem_UnknownProductIsBadRequest(t *testing.T) {
	cartID := uuid.New()
	router := newCartRouter(&cartRepoMock{err: repository.ErrProductNotFound})

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: uuid.New(), Quantity: 1})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", fmt.Sprintf("/carts/%s/items", cartID), bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "invalid_product_id", response.Code)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	cartID := uuid.New()
	router := newCartRouter(&cartRepoMock{cart: &domain.Cart{ID: cartID}})

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: uuid.New(), Quantity: 0})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", fmt.Sprintf("/carts/%s/items", cartID), bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateQuantity_Success(t *testing.T) {
	cartID := uuid.New()
	router := newCartRouter(&cartRepoMock{cart: &domain.Cart{ID: cartID}})

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 9})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PATCH", fmt.Sprintf("/carts/%s/items/4", cartID), bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.CartItem
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, int64(4), response.ID)
	assert.Equal(t, 9, response.Quantity)
}

func TestUpdateQuantity_UnknownItem(t *testing.T) {
	cartID := uuid.New()
	router := newCartRouter(&cartRepoMock{err: repository.ErrItemNotFound})

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 2})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PATCH", fmt.Sprintf("/carts/%s/items/99", cartID), bytes.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRemoveItem_Success(t *testing.T) {
	cartID := uuid.New()
	router := newCartRouter(&cartRepoMock{cart: &domain.Cart{ID: cartID}})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", fmt.Sprintf("/carts/%s/items/4", cartID), nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
