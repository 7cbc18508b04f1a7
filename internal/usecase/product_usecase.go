package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 税率10%。price_with_taxの計算にだけ使う。
var taxRate = decimal.NewFromFloat(1.1)

type ProductUsecase struct {
	productRepo    repo.ProductRepository
	collectionRepo repo.CollectionRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	collectionRepo repo.CollectionRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page         int
	Limit        int
	CollectionID *int64
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Ordering     string
}

type ProductOutput struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Slug        string          `json:"slug"`
	Inventory   int64           `json:"inventory"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	//読み取り時に単価から計算する
	PriceWithTax decimal.Decimal `json:"price_with_tax"`
	Collection   int64           `json:"collection"`
	LastUpdate   time.Time       `json:"last_update"`
}

type ProductListOutput struct {
	Items []ProductOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type CreateProductInput struct {
	Title        string
	Description  string
	Slug         string
	Inventory    int64
	UnitPrice    decimal.Decimal
	CollectionID int64
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	switch in.Ordering {
	case "", "unit_price", "-unit_price", "-last_update":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid ordering")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		CollectionID: in.CollectionID,
		Search:       strings.TrimSpace(in.Search),
		MinPrice:     in.MinPrice,
		MaxPrice:     in.MaxPrice,
		Ordering:     in.Ordering,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		outs = append(outs, toProductOutput(p))
	}

	return ProductListOutput{
		Items: outs,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductOutput(p), nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (ProductOutput, error) {
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	//所属コレクションの存在確認
	if _, err := u.collectionRepo.FindByID(ctx, in.CollectionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "no collection with the given id")
		}
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Slug:         strings.TrimSpace(in.Slug),
		Inventory:    in.Inventory,
		UnitPrice:    in.UnitPrice,
		CollectionID: in.CollectionID,
	})
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductOutput(created), nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in CreateProductInput) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	if _, err := u.collectionRepo.FindByID(ctx, in.CollectionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "no collection with the given id")
		}
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:           productID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Slug:         strings.TrimSpace(in.Slug),
		Inventory:    in.Inventory,
		UnitPrice:    in.UnitPrice,
		CollectionID: in.CollectionID,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetProductDetail(ctx, productID)
}

// 注文明細から参照されている商品は消せない（409）。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrConflict) {
		return NewHTTPError(http.StatusConflict, "product cannot be deleted because it is associated with an order item")
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateProductInput(in CreateProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return NewHTTPError(http.StatusBadRequest, "slug is required")
	}
	if in.Inventory < 0 {
		return NewHTTPError(http.StatusBadRequest, "inventory must be >= 0")
	}
	if in.UnitPrice.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "unit_price must be >= 0")
	}
	if in.CollectionID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid collection")
	}
	return nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Slug:         p.Slug,
		Inventory:    p.Inventory,
		UnitPrice:    p.UnitPrice,
		PriceWithTax: p.UnitPrice.Mul(taxRate).Round(2),
		Collection:   p.CollectionID,
		LastUpdate:   p.LastUpdate,
	}
}
