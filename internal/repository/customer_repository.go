package repository

import (
	"app/internal/domain/model"
	"context"
)

// 認証ユーザーとCustomerプロフィールの対応付け。
type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	FindByUserID(ctx context.Context, userID int64) (model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
}
