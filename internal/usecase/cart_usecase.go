package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /carts の業務ロジックです。
// カートは匿名で、認証なしで操作できる。IDのUUIDが実質の鍵。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// 明細に埋め込む商品の射影
type SimpleProductResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// total_priceは現在の商品単価×数量。保存しない。
type CartItemResponse struct {
	ID         int64                 `json:"id"`
	Product    SimpleProductResponse `json:"product"`
	Quantity   int64                 `json:"quantity"`
	TotalPrice decimal.Decimal       `json:"total_price"`
}

type CartResponse struct {
	ID         string             `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// 空のカートを発行する
func (u *CartUsecase) CreateCart(ctx context.Context) (CartResponse, error) {
	cart, err := u.cartRepo.Create(ctx)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartResponse{ID: cart.ID, Items: []CartItemResponse{}, TotalPrice: decimal.Zero}, nil
}

// カート取得（明細と合計金額つき）
func (u *CartUsecase) GetCart(ctx context.Context, cartID string) (CartResponse, error) {
	if err := validateCartID(cartID); err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// カート削除（明細も一緒に消える）
func (u *CartUsecase) DeleteCart(ctx context.Context, cartID string) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}

	err := u.cartRepo.Delete(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, cartID string, in AddCartItemInput) (CartItemResponse, error) {
	if err := validateCartID(cartID); err != nil {
		return CartItemResponse{}, err
	}
	if in.ProductID <= 0 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	if _, err := u.cartRepo.FindByID(ctx, cartID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品の存在確認
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemResponse{}, NewHTTPError(http.StatusNotFound, "no product with the given id")
	}
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cartID, in.ProductID, in.Quantity)
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCartItemResponse(item, p), nil
}

// 数量変更（加算ではなく置き換え）
func (u *CartUsecase) UpdateItem(ctx context.Context, cartID string, cartItemID int64, in UpdateCartItemInput) (CartItemResponse, error) {
	if err := validateCartID(cartID); err != nil {
		return CartItemResponse{}, err
	}
	if cartItemID <= 0 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	item, err := u.findScopedItem(ctx, cartID, cartItemID)
	if err != nil {
		return CartItemResponse{}, err
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	item.Quantity = in.Quantity

	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCartItemResponse(item, p), nil
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, cartID string, cartItemID int64) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.findScopedItem(ctx, cartID, cartItemID); err != nil {
		return err
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// cartIDの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID string) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		line := toCartItemResponse(it, p)
		respItems = append(respItems, line)
		total = total.Add(line.TotalPrice)
	}

	return CartResponse{ID: cartID, Items: respItems, TotalPrice: total}, nil
}

// 他カートの明細IDを踏んだ場合は「存在しない扱い」にする
func (u *CartUsecase) findScopedItem(ctx context.Context, cartID string, cartItemID int64) (model.CartItem, error) {
	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.CartID != cartID {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return item, nil
}

func validateCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid cart id")
	}
	return nil
}

func toCartItemResponse(it model.CartItem, p model.Product) CartItemResponse {
	return CartItemResponse{
		ID: it.ID,
		Product: SimpleProductResponse{
			ID:        p.ID,
			Title:     p.Title,
			UnitPrice: p.UnitPrice,
		},
		Quantity:   it.Quantity,
		TotalPrice: p.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)),
	}
}
