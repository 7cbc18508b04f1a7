package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CollectionGormRepository struct {
	db *gorm.DB
}

// DI
func NewCollectionGormRepository(db *gorm.DB) *CollectionGormRepository {
	return &CollectionGormRepository{db: db}
}

// products_countはサブクエリで読み取り時に集計する。保存はしない。
func (r *CollectionGormRepository) List(ctx context.Context, page int, limit int) ([]model.Collection, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Collection{}).Count(&total).Error; err != nil {
		return []model.Collection{}, 0, err
	}

	var items []model.Collection
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).Model(&model.Collection{}).
		Select("collections.*, (?) AS products_count",
			r.db.Model(&model.Product{}).
				Select("count(*)").
				Where("products.collection_id = collections.id"),
		).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Collection{}, 0, err
	}

	return items, total, nil
}

func (r *CollectionGormRepository) FindByID(ctx context.Context, id int64) (model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).Model(&model.Collection{}).
		Select("collections.*, (?) AS products_count",
			r.db.Model(&model.Product{}).
				Select("count(*)").
				Where("products.collection_id = collections.id"),
		).
		Where("collections.id = ?", id).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Collection{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) Update(ctx context.Context, c model.Collection) error {
	res := r.db.WithContext(ctx).Model(&model.Collection{}).
		Where("id = ?", c.ID).
		Update("title", c.Title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// コレクション削除。商品が1件でも残っていたらErrConflict。
func (r *CollectionGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&model.Product{}).
			Where("collection_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return repo.ErrConflict
		}

		res := tx.Delete(&model.Collection{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
