package main

import (
	"context"
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/event"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

// アクセストークン
func newJWTIssuer(cfg config.Config) *jwtIssuer {
	return &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envはローカル用。無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Collection{},
		&model.Product{},
		&model.Review{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	collectionRepo := infraRepo.NewCollectionGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg)

	//注文確定イベント。まずはログ出力のみ
	events := event.NewBus(
		func(ctx context.Context, ev event.OrderCreated) error {
			log.Printf("order created: id=%d customer_id=%d items=%d", ev.Order.ID, ev.Order.CustomerID, len(ev.Items))
			return nil
		},
	)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(txManager, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, collectionRepo)
	collectionUC := usecase.NewCollectionUsecase(collectionRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	customerUC := usecase.NewCustomerUsecase(customerRepo)
	orderUC := usecase.NewOrderUsecase(txManager, events)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC),
		Product:    handler.NewProductHandler(productUC),
		Collection: handler.NewCollectionHandler(collectionUC),
		Review:     handler.NewReviewHandler(reviewUC),
		Cart:       handler.NewCartHandler(cartUC),
		Customer:   handler.NewCustomerHandler(customerUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers); err != nil {
		panic(err)
	}
}
