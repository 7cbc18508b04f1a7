package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（handler専用：名前衝突回避）
// =====================

type HandlerProductRepoMock struct{ mock.Mock }

func (m *HandlerProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *HandlerProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *HandlerProductRepoMock) CountByCollectionID(ctx context.Context, collectionID int64) (int64, error) {
	panic("not used in handler tests")
}

func (m *HandlerProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *HandlerProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in handler tests")
}

func (m *HandlerProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type HandlerCollectionRepoMock struct{ mock.Mock }

func (m *HandlerCollectionRepoMock) List(ctx context.Context, page int, limit int) ([]model.Collection, int64, error) {
	panic("not used in handler tests")
}

func (m *HandlerCollectionRepoMock) FindByID(ctx context.Context, id int64) (model.Collection, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Collection)
	return c, args.Error(1)
}

func (m *HandlerCollectionRepoMock) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	panic("not used in handler tests")
}

func (m *HandlerCollectionRepoMock) Update(ctx context.Context, c model.Collection) error {
	panic("not used in handler tests")
}

func (m *HandlerCollectionRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in handler tests")
}

const handlerTestSecret = "handler-test-secret"

func newProductServer(t *testing.T) (*echo.Echo, *HandlerProductRepoMock, *HandlerCollectionRepoMock) {
	t.Helper()

	productRepo := new(HandlerProductRepoMock)
	collectionRepo := new(HandlerCollectionRepoMock)
	uc := usecase.NewProductUsecase(productRepo, collectionRepo)

	e := echo.New()
	h := handler.NewProductHandler(uc)
	h.RegisterRoutes(e, config.Config{JWTSecret: handlerTestSecret})

	return e, productRepo, collectionRepo
}

func adminToken(t *testing.T) string {
	t.Helper()
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  int64(99),
		"role": string(model.RoleAdmin),
		"iat":  now.Unix(),
		"exp":  now.Add(15 * time.Minute).Unix(),
	})
	signed, err := tok.SignedString([]byte(handlerTestSecret))
	assert.NoError(t, err)
	return signed
}

// Test: 公開APIは認証なしで商品詳細を返す
func TestProductHandler_Detail(t *testing.T) {
	e, productRepo, _ := newProductServer(t)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID:        1,
		Title:     "Coffee",
		UnitPrice: decimal.RequireFromString("10.00"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Coffee", body["title"])
	assert.Equal(t, "11.00", body["price_with_tax"])
}

func TestProductHandler_Detail_NotFound(t *testing.T) {
	e, productRepo, _ := newProductServer(t)

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/products/99", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not found", body["error"])
}

func TestProductHandler_List_InvalidPage(t *testing.T) {
	e, _, _ := newProductServer(t)

	req := httptest.NewRequest(http.MethodGet, "/products?page=abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Test: 書き込み系は未認証なら401
func TestProductHandler_Create_Unauthenticated(t *testing.T) {
	e, _, _ := newProductServer(t)

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: 管理者トークンなら409まで届く（注文参照あり商品の削除）
func TestProductHandler_Delete_Conflict(t *testing.T) {
	e, productRepo, _ := newProductServer(t)

	productRepo.On("Delete", mock.Anything, int64(1)).Return(repo.ErrConflict)

	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
