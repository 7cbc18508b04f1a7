package model

import "time"

type Membership string

const (
	MembershipBasic  Membership = "BASIC"
	MembershipSilver Membership = "SILVER"
	MembershipGold   Membership = "GOLD"
)

// ユーザー1人につきCustomerは1件（user_idはユニーク）
type Customer struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	Phone      string     `gorm:"type:varchar(30)" json:"phone"`
	BirthDate  *time.Time `json:"birth_date"`
	Membership Membership `gorm:"type:varchar(20);not null;default:'BASIC'" json:"membership"`
}
