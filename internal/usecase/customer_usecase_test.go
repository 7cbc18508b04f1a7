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

func TestCustomerUsecase_GetMe(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	uc := usecase.NewCustomerUsecase(customerRepo)

	customerRepo.On("FindByUserID", mock.Anything, int64(7)).
		Return(model.Customer{ID: 70, UserID: 7, Membership: model.MembershipBasic}, nil)

	c, err := uc.GetMe(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(70), c.ID)
}

func TestCustomerUsecase_GetMe_NotProvisioned(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	uc := usecase.NewCustomerUsecase(customerRepo)

	customerRepo.On("FindByUserID", mock.Anything, int64(7)).
		Return(model.Customer{}, repo.ErrNotFound)

	_, err := uc.GetMe(context.Background(), 7)
	assertHTTPError(t, err, http.StatusNotFound)
}

func TestCustomerUsecase_UpdateMe(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	uc := usecase.NewCustomerUsecase(customerRepo)

	customerRepo.On("FindByUserID", mock.Anything, int64(7)).
		Return(model.Customer{ID: 70, UserID: 7, Membership: model.MembershipBasic}, nil)
	customerRepo.On("Update", mock.Anything, mock.MatchedBy(func(c model.Customer) bool {
		return c.ID == 70 && c.Phone == "090-0000-0000" && c.Membership == model.MembershipGold
	})).Return(nil)

	c, err := uc.UpdateMe(context.Background(), 7, usecase.UpdateCustomerInput{
		Phone:      "090-0000-0000",
		Membership: "GOLD",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.MembershipGold, c.Membership)
	customerRepo.AssertExpectations(t)
}

// Test: membershipは定義済みの値だけ受け付ける
func TestCustomerUsecase_UpdateMe_InvalidMembership(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	uc := usecase.NewCustomerUsecase(customerRepo)

	_, err := uc.UpdateMe(context.Background(), 7, usecase.UpdateCustomerInput{Membership: "PLATINUM"})

	assertHTTPError(t, err, http.StatusBadRequest)
	customerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
