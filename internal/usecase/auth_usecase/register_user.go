package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email    string
	Password string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User     model.User
	Customer model.Customer
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
// UserとCustomerプロフィールを同じトランザクションで作る。
// これでPlaceOrder時点では必ずCustomerが居る。
type RegisterUserUsecase struct {
	tx     repository.TransactionManager
	hasher PasswordHasher
	clock  Clock
}

// DI
func NewRegisterUserUsecase(
	tx repository.TransactionManager,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		tx:     tx,
		hasher: hasher,
		clock:  clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	// emailの形式チェック
	if !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	// password の長さチェック（最小12文字）
	if len(in.Password) < 12 {
		return out, ErrPasswordTooShort
	}

	// よくある弱いパスワードの拒否
	if isWeakPassword(in.Password) {
		return out, ErrWeakPassword
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		// email重複チェック
		existing, err := r.Users().FindByEmail(ctx, in.Email)
		if err == nil && existing != nil {
			return ErrEmailAlreadyExists
		}
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		user := &model.User{
			Email:        strings.TrimSpace(in.Email),
			PasswordHash: hashed,         // ハッシュを保存（平文は保存しない）
			Role:         model.RoleUser, // 初期はUSER
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}

		//対応するCustomerを同時に作る（初期はBASIC）
		customer, err := r.Customers().Create(ctx, model.Customer{
			UserID:     user.ID,
			Membership: model.MembershipBasic,
		})
		if err != nil {
			return err
		}

		out.User = *user
		out.Customer = customer
		return nil
	})
	if err != nil {
		return RegisterUserOutput{}, err
	}

	// 返すときは password を空にして漏洩防止
	out.User.PasswordHash = ""
	return out, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// よくある弱いパスワード
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":     {},
		"password123":  {},
		"123456789012": {},
		"1234567890":   {},
		"12345678":     {},
		"qwerty":       {},
		"qwertyuiop":   {},
		"letmein":      {},
		"admin":        {},
		"admin123":     {},
	}

	_, ok := weak[normalized]
	return ok
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
