package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	//商品削除ガードで使う参照数
	CountByProductID(ctx context.Context, productID int64) (int64, error)
}
