package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/event"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository Mocks
// =====================

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) CountByCollectionID(ctx context.Context, collectionID int64) (int64, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCollectionRepository struct{ mock.Mock }

func (m *MockCollectionRepository) List(ctx context.Context, page int, limit int) ([]model.Collection, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Collection)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockCollectionRepository) FindByID(ctx context.Context, id int64) (model.Collection, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Collection)
	return c, args.Error(1)
}

func (m *MockCollectionRepository) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Collection)
	return created, args.Error(1)
}

func (m *MockCollectionRepository) Update(ctx context.Context, c model.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, reviewID int64) (model.Review, error) {
	args := m.Called(ctx, reviewID)
	rv, _ := args.Get(0).(model.Review)
	return rv, args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, r model.Review) (model.Review, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Review)
	return created, args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, r model.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteByID(ctx context.Context, reviewID int64) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Create(ctx context.Context) (model.Cart, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type MockCartItemRepository struct{ mock.Mock }

func (m *MockCartItemRepository) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *MockCartItemRepository) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *MockCartItemRepository) UpsertByCartAndProduct(ctx context.Context, cartID string, productID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID, addQty)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *MockCartItemRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *MockCartItemRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Customer)
	return created, args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *MockOrderItemRepository) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListByResource(ctx context.Context, resourceType model.AuditResourceType, resourceID int64) ([]model.AuditLog, error) {
	args := m.Called(ctx, resourceType, resourceID)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

// =====================
// Tx Stubs
// =====================

// WithinTxに渡されるリポジトリ束。テストでは実Txは張らない。
type stubTxRepos struct {
	orders     *MockOrderRepository
	orderItems *MockOrderItemRepository
	carts      *MockCartRepository
	cartItems  *MockCartItemRepository
	products   *MockProductRepository
	customers  *MockCustomerRepository
	users      *MockUserRepository
	auditLogs  *MockAuditLogRepository
}

func newStubTxRepos() *stubTxRepos {
	return &stubTxRepos{
		orders:     new(MockOrderRepository),
		orderItems: new(MockOrderItemRepository),
		carts:      new(MockCartRepository),
		cartItems:  new(MockCartItemRepository),
		products:   new(MockProductRepository),
		customers:  new(MockCustomerRepository),
		users:      new(MockUserRepository),
		auditLogs:  new(MockAuditLogRepository),
	}
}

func (s *stubTxRepos) Orders() repo.OrderRepository         { return s.orders }
func (s *stubTxRepos) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s *stubTxRepos) Carts() repo.CartRepository           { return s.carts }
func (s *stubTxRepos) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s *stubTxRepos) Products() repo.ProductRepository     { return s.products }
func (s *stubTxRepos) Customers() repo.CustomerRepository   { return s.customers }
func (s *stubTxRepos) Users() repo.UserRepository           { return s.users }
func (s *stubTxRepos) AuditLogs() repo.AuditLogRepository   { return s.auditLogs }

// fnのエラーをそのまま返す（=ロールバック相当）
type stubTxManager struct {
	repos *stubTxRepos
}

func (m *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// Event Recorder
// =====================

// コミット後イベントの配信を記録するだけのPublisher
type recordingPublisher struct {
	published []event.OrderCreated
}

func (p *recordingPublisher) PublishOrderCreated(ctx context.Context, ev event.OrderCreated) {
	p.published = append(p.published, ev)
}

// =====================
// Helpers
// =====================

func assertHTTPError(t *testing.T, err error, wantStatus int) {
	t.Helper()
	assert.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected *usecase.HTTPError, got %T", err) {
		assert.Equal(t, wantStatus, he.Status)
	}
}
