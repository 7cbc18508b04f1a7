package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ReviewUsecase は /products/:product_id/reviews の業務ロジックです。
type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
}

// DI
func NewReviewUsecase(reviewRepo repo.ReviewRepository, productRepo repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviewRepo: reviewRepo, productRepo: productRepo}
}

type ReviewInput struct {
	Name        string
	Description string
}

func (u *ReviewUsecase) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return []model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := u.ensureProductExists(ctx, productID); err != nil {
		return []model.Review{}, err
	}

	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return []model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reviews, nil
}

func (u *ReviewUsecase) CreateReview(ctx context.Context, productID int64, in ReviewInput) (model.Review, error) {
	if productID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if err := u.ensureProductExists(ctx, productID); err != nil {
		return model.Review{}, err
	}

	created, err := u.reviewRepo.Create(ctx, model.Review{
		ProductID:   productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ReviewUsecase) UpdateReview(ctx context.Context, productID int64, reviewID int64, in ReviewInput) (model.Review, error) {
	if productID <= 0 || reviewID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "description is required")
	}

	rv, err := u.findScoped(ctx, productID, reviewID)
	if err != nil {
		return model.Review{}, err
	}

	rv.Name = strings.TrimSpace(in.Name)
	rv.Description = in.Description
	if err := u.reviewRepo.Update(ctx, rv); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rv, nil
}

func (u *ReviewUsecase) DeleteReview(ctx context.Context, productID int64, reviewID int64) error {
	if productID <= 0 || reviewID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.findScoped(ctx, productID, reviewID); err != nil {
		return err
	}

	if err := u.reviewRepo.DeleteByID(ctx, reviewID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ReviewUsecase) ensureProductExists(ctx context.Context, productID int64) error {
	_, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "no product with the given id")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 他商品のレビューIDを踏んだ場合は「存在しない扱い」にする
func (u *ReviewUsecase) findScoped(ctx context.Context, productID int64, reviewID int64) (model.Review, error) {
	rv, err := u.reviewRepo.FindByID(ctx, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if rv.ProductID != productID {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return rv, nil
}
