package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//管理者用の全件一覧
	ListAll(ctx context.Context, page int, limit int) ([]model.Order, int64, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	//明細ごと削除する
	Delete(ctx context.Context, orderID int64) error
}
