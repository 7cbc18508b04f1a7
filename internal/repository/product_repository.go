package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 参照が残っていて削除できない
var ErrConflict = errors.New("conflict")

// 一覧検索
type ProductListQuery struct {
	Page         int
	Limit        int
	CollectionID *int64
	//title/descriptionの部分一致
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// unit_price / -unit_price / -last_update
	Ordering string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	CountByCollectionID(ctx context.Context, collectionID int64) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error

	//レビューとカート明細も一緒に消す。
	//注文明細から参照されている場合はErrConflict。
	Delete(ctx context.Context, id int64) error
}
