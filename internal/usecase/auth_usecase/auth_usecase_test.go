package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	//DBのautoIncrementを模す
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type AuthCustomerRepoMock struct{ mock.Mock }

func (m *AuthCustomerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Customer)
	return created, args.Error(1)
}

func (m *AuthCustomerRepoMock) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	panic("not used in auth tests")
}

func (m *AuthCustomerRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	panic("not used in auth tests")
}

func (m *AuthCustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	panic("not used in auth tests")
}

// 会員登録が触るのはUsersとCustomersだけ
type authTxRepos struct {
	users     *AuthUserRepoMock
	customers *AuthCustomerRepoMock
}

func (s *authTxRepos) Orders() repository.OrderRepository         { panic("not used in auth tests") }
func (s *authTxRepos) OrderItems() repository.OrderItemRepository { panic("not used in auth tests") }
func (s *authTxRepos) Carts() repository.CartRepository           { panic("not used in auth tests") }
func (s *authTxRepos) CartItems() repository.CartItemRepository   { panic("not used in auth tests") }
func (s *authTxRepos) Products() repository.ProductRepository     { panic("not used in auth tests") }
func (s *authTxRepos) Customers() repository.CustomerRepository   { return s.customers }
func (s *authTxRepos) Users() repository.UserRepository           { return s.users }
func (s *authTxRepos) AuditLogs() repository.AuditLogRepository   { panic("not used in auth tests") }

type authTxManager struct {
	repos *authTxRepos
}

func (m *authTxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	return fn(m.repos)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type stubHasher struct{}

func (h *stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type stubVerifier struct {
	ok bool
}

func (v *stubVerifier) Verify(plain string, hashed string) bool { return v.ok }

type stubIssuer struct {
	token string
	exp   time.Time
}

func (i *stubIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return i.token, i.exp, nil
}

func newRegisterSetup() (*auth.RegisterUserUsecase, *authTxRepos) {
	repos := &authTxRepos{
		users:     new(AuthUserRepoMock),
		customers: new(AuthCustomerRepoMock),
	}
	uc := auth.NewRegisterUserUsecase(&authTxManager{repos: repos}, &stubHasher{}, &fixedClock{now: time.Now()})
	return uc, repos
}

// =====================
// Register
// =====================

// Test: UserとCustomerが同一Txで作られる
func TestRegisterUser_CreatesUserAndCustomer(t *testing.T) {
	uc, repos := newRegisterSetup()

	repos.users.On("FindByEmail", mock.Anything, "taro@example.com").Return(nil, repository.ErrUserNotFound)
	repos.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "taro@example.com" && u.Role == model.RoleUser && u.IsActive &&
			u.PasswordHash == "hashed:correct-horse-battery"
	})).Return(nil)
	repos.customers.On("Create", mock.Anything, mock.MatchedBy(func(c model.Customer) bool {
		return c.UserID == 1 && c.Membership == model.MembershipBasic
	})).Return(model.Customer{ID: 10, UserID: 1, Membership: model.MembershipBasic}, nil)

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "taro@example.com",
		Password: "correct-horse-battery",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.User.ID)
	assert.Equal(t, int64(10), out.Customer.ID)
	//レスポンスにハッシュは載せない
	assert.Empty(t, out.User.PasswordHash)
	repos.users.AssertExpectations(t)
	repos.customers.AssertExpectations(t)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	uc, _ := newRegisterSetup()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "not-an-email",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat)
}

func TestRegisterUser_PasswordTooShort(t *testing.T) {
	uc, _ := newRegisterSetup()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "taro@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRegisterUser_WeakPassword(t *testing.T) {
	uc, _ := newRegisterSetup()

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "taro@example.com",
		Password: "123456789012",
	})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	uc, repos := newRegisterSetup()

	repos.users.On("FindByEmail", mock.Anything, "taro@example.com").
		Return(&model.User{ID: 5, Email: "taro@example.com"}, nil)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "taro@example.com",
		Password: "correct-horse-battery",
	})

	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	repos.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// Login
// =====================

func TestLogin_Success(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := &stubIssuer{token: "signed-token", exp: now.Add(15 * time.Minute)}
	uc := auth.NewLoginUsecase(userRepo, &stubVerifier{ok: true}, issuer, &fixedClock{now: now})

	userRepo.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{
		ID:           1,
		Email:        "taro@example.com",
		PasswordHash: "hashed",
		Role:         model.RoleUser,
		IsActive:     true,
	}, nil)

	out, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "taro@example.com",
		Password: "correct-horse-battery",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token.AccessToken)
	assert.Equal(t, 900, out.Token.ExpiresIn)
	assert.Empty(t, out.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := auth.NewLoginUsecase(userRepo, &stubVerifier{ok: false}, &stubIssuer{}, &fixedClock{now: time.Now()})

	userRepo.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{
		ID: 1, Email: "taro@example.com", PasswordHash: "hashed", IsActive: true,
	}, nil)

	_, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "taro@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// Test: 未登録emailもinvalid credentials（存在を教えない）
func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := auth.NewLoginUsecase(userRepo, &stubVerifier{ok: true}, &stubIssuer{}, &fixedClock{now: time.Now()})

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "nobody@example.com",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := auth.NewLoginUsecase(userRepo, &stubVerifier{ok: true}, &stubIssuer{}, &fixedClock{now: time.Now()})

	userRepo.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{
		ID: 1, Email: "taro@example.com", PasswordHash: "hashed", IsActive: false,
	}, nil)

	_, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "taro@example.com",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}
