package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewUsecase() (*usecase.ReviewUsecase, *MockReviewRepository, *MockProductRepository) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	return usecase.NewReviewUsecase(reviewRepo, productRepo), reviewRepo, productRepo
}

// Test: 存在しない商品のレビュー一覧は404
func TestReviewUsecase_ListReviews_ProductNotFound(t *testing.T) {
	uc, _, productRepo := newReviewUsecase()

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.ListReviews(context.Background(), 99)
	assertHTTPError(t, err, http.StatusNotFound)
}

// Test: レビュー作成
func TestReviewUsecase_CreateReview(t *testing.T) {
	uc, reviewRepo, productRepo := newReviewUsecase()

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1}, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 1 && r.Name == "taro" && r.Description == "good"
	})).Return(model.Review{ID: 5, ProductID: 1, Name: "taro", Description: "good"}, nil)

	out, err := uc.CreateReview(context.Background(), 1, usecase.ReviewInput{Name: " taro ", Description: "good"})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	reviewRepo.AssertExpectations(t)
}

func TestReviewUsecase_CreateReview_EmptyName(t *testing.T) {
	uc, _, _ := newReviewUsecase()

	_, err := uc.CreateReview(context.Background(), 1, usecase.ReviewInput{Name: "", Description: "good"})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// Test: 他商品のレビューIDは404（存在も教えない）
func TestReviewUsecase_UpdateReview_OtherProductHidden(t *testing.T) {
	uc, reviewRepo, _ := newReviewUsecase()

	reviewRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Review{ID: 5, ProductID: 2}, nil)

	_, err := uc.UpdateReview(context.Background(), 1, 5, usecase.ReviewInput{Name: "taro", Description: "good"})

	assertHTTPError(t, err, http.StatusNotFound)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewUsecase_DeleteReview(t *testing.T) {
	uc, reviewRepo, _ := newReviewUsecase()

	reviewRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Review{ID: 5, ProductID: 1}, nil)
	reviewRepo.On("DeleteByID", mock.Anything, int64(5)).Return(nil)

	assert.NoError(t, uc.DeleteReview(context.Background(), 1, 5))
	reviewRepo.AssertExpectations(t)
}
