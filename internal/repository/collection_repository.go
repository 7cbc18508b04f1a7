package repository

import (
	"app/internal/domain/model"
	"context"
)

type CollectionRepository interface {
	//products_countを集計して返す
	List(ctx context.Context, page int, limit int) ([]model.Collection, int64, error)
	FindByID(ctx context.Context, id int64) (model.Collection, error)

	Create(ctx context.Context, c model.Collection) (model.Collection, error)
	Update(ctx context.Context, c model.Collection) error

	//商品から参照されている場合はErrConflict。
	Delete(ctx context.Context, id int64) error
}
