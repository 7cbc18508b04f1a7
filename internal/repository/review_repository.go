package repository

import (
	"app/internal/domain/model"
	"context"
)

type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	FindByID(ctx context.Context, reviewID int64) (model.Review, error)

	Create(ctx context.Context, r model.Review) (model.Review, error)
	Update(ctx context.Context, r model.Review) error
	DeleteByID(ctx context.Context, reviewID int64) error
}
