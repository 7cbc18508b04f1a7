package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 絞り込み/検索/並び替え/ページング付きで商品を返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.CollectionID != nil {
		tx = tx.Where("collection_id = ?", *q.CollectionID)
	}

	// searchはtitleとdescriptionを対象
	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("unit_price > ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("unit_price < ?", *q.MaxPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//ordering
	switch q.Ordering {
	case "unit_price":
		tx = tx.Order("unit_price asc").Order("id asc")
	case "-unit_price":
		tx = tx.Order("unit_price desc").Order("id desc")
	case "-last_update":
		tx = tx.Order("last_update desc").Order("id desc")
	default:
		tx = tx.Order("id asc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// コレクション削除ガード用の参照数
func (r *ProductGormRepository) CountByCollectionID(ctx context.Context, collectionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":         p.Title,
		"description":   p.Description,
		"slug":          p.Slug,
		"inventory":     p.Inventory,
		"unit_price":    p.UnitPrice,
		"collection_id": p.CollectionID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除。
// 注文明細から参照されていたらErrConflict（過去の注文を壊さない）。
// レビューとカート明細は商品と一緒に消す。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&model.OrderItem{}).
			Where("product_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return repo.ErrConflict
		}

		if err := tx.Where("product_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
