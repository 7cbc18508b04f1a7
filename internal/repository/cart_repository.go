package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartRepository interface {
	//UUIDを採番して空のカートを作る
	Create(ctx context.Context) (model.Cart, error)
	FindByID(ctx context.Context, cartID string) (model.Cart, error)

	//明細ごと削除する
	Delete(ctx context.Context, cartID string) error
}
