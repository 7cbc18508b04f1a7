package event

import (
	"context"
	"log"

	"app/internal/domain/model"
)

// 注文確定イベント。コミット後に配信する。
type OrderCreated struct {
	Order model.Order
	Items []model.OrderItem
}

// 通知・在庫連携など、外部のリスナーが実装する。
type OrderCreatedListener func(ctx context.Context, ev OrderCreated) error

// Usecaseが使う発行口。
type Publisher interface {
	PublishOrderCreated(ctx context.Context, ev OrderCreated)
}

// リスナーはDIで注入する。グローバル登録はしない。
type Bus struct {
	listeners []OrderCreatedListener
}

func NewBus(listeners ...OrderCreatedListener) *Bus {
	return &Bus{listeners: listeners}
}

// ベストエフォート配信。
// 注文トランザクションはすでにコミット済みなので、
// リスナーの失敗はログに残すだけで呼び出し元へは返さない。
func (b *Bus) PublishOrderCreated(ctx context.Context, ev OrderCreated) {
	for _, l := range b.listeners {
		b.deliver(ctx, l, ev)
	}
}

func (b *Bus) deliver(ctx context.Context, l OrderCreatedListener, ev OrderCreated) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("order_created listener panic: order_id=%d: %v", ev.Order.ID, r)
		}
	}()

	if err := l(ctx, ev); err != nil {
		log.Printf("order_created listener failed: order_id=%d: %v", ev.Order.ID, err)
	}
}
