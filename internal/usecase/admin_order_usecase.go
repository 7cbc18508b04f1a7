package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者だけが使う注文の変更・削除。
// ルート側のAdminRoleGuardが前提だが、ここでも監査のためactorを受け取る。
type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string
}

// payment_statusの更新。それ以外のフィールドは変更できない。
func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, actorUserID int64, orderID int64, in UpdatePaymentStatusInput) (OrderOutput, error) {
	if actorUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	status := model.PaymentStatus(in.PaymentStatus)
	switch status {
	case model.PaymentStatusPending, model.PaymentStatusComplete, model.PaymentStatusFailed:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, status); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（誰がどのステータスへ変えたか）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdatePaymentStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   auditJSON(map[string]string{"payment_status": string(before.PaymentStatus)}),
			AfterJSON:    auditJSON(map[string]string{"payment_status": string(status)}),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		after := before
		after.PaymentStatus = status
		out, err = loadOrderOutput(ctx, r, after)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文削除（明細も一緒に消える）
func (u *AdminOrderUsecase) DeleteOrder(ctx context.Context, actorUserID int64, orderID int64) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().Delete(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   auditJSON(before),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func auditJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
