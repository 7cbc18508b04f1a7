package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CollectionUsecase struct {
	collectionRepo repo.CollectionRepository
}

// DI
func NewCollectionUsecase(collectionRepo repo.CollectionRepository) *CollectionUsecase {
	return &CollectionUsecase{collectionRepo: collectionRepo}
}

type CollectionListOutput struct {
	Items []model.Collection `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type CollectionInput struct {
	Title string
}

func (u *CollectionUsecase) ListCollections(ctx context.Context, page int, limit int) (CollectionListOutput, error) {
	if page < 1 {
		return CollectionListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return CollectionListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.collectionRepo.List(ctx, page, limit)
	if err != nil {
		return CollectionListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CollectionListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *CollectionUsecase) GetCollectionDetail(ctx context.Context, collectionID int64) (model.Collection, error) {
	if collectionID <= 0 {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "invalid collection id")
	}

	c, err := u.collectionRepo.FindByID(ctx, collectionID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Collection{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CollectionUsecase) CreateCollection(ctx context.Context, in CollectionInput) (model.Collection, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}

	created, err := u.collectionRepo.Create(ctx, model.Collection{Title: strings.TrimSpace(in.Title)})
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CollectionUsecase) UpdateCollection(ctx context.Context, collectionID int64, in CollectionInput) (model.Collection, error) {
	if collectionID <= 0 {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "invalid collection id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}

	err := u.collectionRepo.Update(ctx, model.Collection{ID: collectionID, Title: strings.TrimSpace(in.Title)})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Collection{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCollectionDetail(ctx, collectionID)
}

// 商品が残っているコレクションは消せない（409）。
func (u *CollectionUsecase) DeleteCollection(ctx context.Context, collectionID int64) error {
	if collectionID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid collection id")
	}

	err := u.collectionRepo.Delete(ctx, collectionID)
	if errors.Is(err, repo.ErrConflict) {
		return NewHTTPError(http.StatusConflict, "collection cannot be deleted because it includes one or more products")
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
