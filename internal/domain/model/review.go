package model

import "time"

// 商品レビュー。商品削除と一緒に消える。
type Review struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64     `gorm:"not null;index" json:"-"`
	Date        time.Time `gorm:"not null;autoCreateTime" json:"date"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
}
