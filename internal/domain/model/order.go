package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusComplete PaymentStatus = "COMPLETE"
	PaymentStatusFailed   PaymentStatus = "FAILED"
)

// 確定済みの注文。明細が付いたら不変（payment_statusの管理者更新だけ例外）。
type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    int64         `gorm:"not null;index" json:"customer"`
	PlacedAt      time.Time     `gorm:"not null;autoCreateTime" json:"placed_at"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`
}
