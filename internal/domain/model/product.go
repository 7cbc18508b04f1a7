package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Slug        string `gorm:"type:varchar(255);not null;index" json:"slug"`

	//在庫数（注文時に予約・減算はしない）
	Inventory int64 `gorm:"not null" json:"inventory"`

	//単価は固定小数点で保存する
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	CollectionID int64     `gorm:"not null;index" json:"collection"`
	LastUpdate   time.Time `gorm:"not null;autoUpdateTime" json:"last_update"`
}
