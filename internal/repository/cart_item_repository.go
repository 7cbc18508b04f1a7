package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)

	// 同一商品はプラス。更新後（または作成後）の行を返す。
	UpsertByCartAndProduct(ctx context.Context, cartID string, productID int64, addQty int64) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
}
