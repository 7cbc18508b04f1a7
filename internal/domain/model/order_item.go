package model

import "github.com/shopspring/decimal"

// 注文明細。作成後は一切更新しない。
// unit_priceは注文時点の商品価格のスナップショット。
// 後から商品価格が変わっても過去の注文金額は変わらない。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
