package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/event"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase はカートを注文に変換する中核の業務ロジックです。
// カートの読み取り・注文の書き込み・カート削除を1トランザクションで行う。
type OrderUsecase struct {
	tx     repo.TransactionManager
	events event.Publisher
}

func NewOrderUsecase(tx repo.TransactionManager, events event.Publisher) *OrderUsecase {
	return &OrderUsecase{tx: tx, events: events}
}

type PlaceOrderInput struct {
	CartID string
}

type OrderItemOutput struct {
	ID      int64                 `json:"id"`
	Product SimpleProductResponse `json:"product"`
	//注文時点の単価スナップショット
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	Customer      int64             `json:"customer"`
	PlacedAt      time.Time         `json:"placed_at"`
	PaymentStatus string            `json:"payment_status"`
	Items         []OrderItemOutput `json:"items"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
}

// PlaceOrder はカートを不変の注文へ変換する。
// 1トランザクション内で、検証→注文作成→明細スナップショット→カート削除まで行い、
// コミット後にorder_createdイベントを配信する。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	cartID := strings.TrimSpace(in.CartID)
	if cartID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart_id")
	}

	var out OrderOutput
	var ev event.OrderCreated

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//前提条件はどの書き込みよりも先に検証する
		if _, err := r.Carts().FindByID(ctx, cartID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "no cart with the given id was found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cartID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "the cart is empty")
		}

		//Customerは登録時に作成済みのはず。無ければそのまま失敗させる。
		customer, err := r.Customers().FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "no customer for the current user")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:    customer.ID,
			PlacedAt:      now,
			PaymentStatus: model.PaymentStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細は「この瞬間の商品単価」を写し取る。
		//以後の値上げ・値下げは過去の注文に波及しない。
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		products := make(map[int64]model.Product, len(cartItems))

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			products[p.ID] = p

			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				UnitPrice: p.UnitPrice,
			})
		}

		//明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文の元になったカートは明細ごと削除する
		if err := r.Carts().Delete(ctx, cartID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:            orderID,
			CustomerID:    customer.ID,
			PlacedAt:      now,
			PaymentStatus: model.PaymentStatusPending,
		}
		out = toOrderOutput(created, orderItems, products)
		ev = event.OrderCreated{Order: created, Items: orderItems}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//コミット後に配信。リスナーの失敗は注文を巻き戻さない。
	u.events.PublishOrderCreated(ctx, ev)

	return out, nil
}

// 一覧。管理者は全件、それ以外は自分の注文だけ。
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64, role model.Role, page int, limit int) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var orders []model.Order
		var err error

		if role == model.RoleAdmin {
			orders, _, err = r.Orders().ListAll(ctx, page, limit)
		} else {
			var customer model.Customer
			customer, err = r.Customers().FindByUserID(ctx, userID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "no customer for the current user")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			orders, _, err = r.Orders().ListByCustomerID(ctx, customer.ID, page, limit)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := loadOrderOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 詳細。所有者と管理者だけが読める。
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, role model.Role, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if role != model.RoleAdmin {
			customer, err := r.Customers().FindByUserID(ctx, userID)
			if err != nil {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			//他人の注文は「存在しない扱い」にする
			if o.CustomerID != customer.ID {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
		}

		out, err = loadOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func loadOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products := make(map[int64]model.Product, len(items))
	for _, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		p, err := r.Products().FindByID(ctx, it.ProductID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		products[it.ProductID] = p
	}

	return toOrderOutput(o, items, products), nil
}

func toOrderOutput(o model.Order, items []model.OrderItem, products map[int64]model.Product) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p := products[it.ProductID]
		outItems = append(outItems, OrderItemOutput{
			ID: it.ID,
			Product: SimpleProductResponse{
				ID:        it.ProductID,
				Title:     p.Title,
				UnitPrice: p.UnitPrice,
			},
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})

		//合計は必ずスナップショット価格から計算する
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return OrderOutput{
		ID:            o.ID,
		Customer:      o.CustomerID,
		PlacedAt:      o.PlacedAt,
		PaymentStatus: string(o.PaymentStatus),
		Items:         outItems,
		TotalPrice:    total,
	}
}
