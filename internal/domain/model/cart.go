package model

import "time"

// 注文前の買い物かご。注文確定で削除される。
// IDは連番ではなく推測できないUUID。
type Cart struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
