package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CustomerUsecase は /customers の業務ロジックです。
// Customerは登録時に自動作成されるので、ここでは取得と更新だけ。
type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
}

// DI
func NewCustomerUsecase(customerRepo repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo}
}

type UpdateCustomerInput struct {
	Phone      string
	BirthDate  *time.Time
	Membership string
}

// 自分のプロフィール取得
func (u *CustomerUsecase) GetMe(ctx context.Context, userID int64) (model.Customer, error) {
	if userID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	c, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "no customer for the current user")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 自分のプロフィール更新
func (u *CustomerUsecase) UpdateMe(ctx context.Context, userID int64, in UpdateCustomerInput) (model.Customer, error) {
	if userID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	membership := model.Membership(in.Membership)
	switch membership {
	case model.MembershipBasic, model.MembershipSilver, model.MembershipGold:
	default:
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid membership")
	}

	c, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "no customer for the current user")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c.Phone = in.Phone
	c.BirthDate = in.BirthDate
	c.Membership = membership

	if err := u.customerRepo.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Customer{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 管理者用：IDでCustomerを取得
func (u *CustomerUsecase) GetByID(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.customerRepo.FindByID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}
