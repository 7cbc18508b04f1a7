package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

// DI
func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&reviews).Error
	if err != nil {
		return []model.Review{}, err
	}
	return reviews, nil
}

func (r *ReviewGormRepository) FindByID(ctx context.Context, reviewID int64) (model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).First(&rv, reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Review{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

func (r *ReviewGormRepository) Update(ctx context.Context, rv model.Review) error {
	res := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"name":        rv.Name,
			"description": rv.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReviewGormRepository) DeleteByID(ctx context.Context, reviewID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, reviewID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
