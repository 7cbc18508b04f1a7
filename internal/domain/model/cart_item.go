package model

// カートの明細
// (cart_id, product_id) は1行まで。同じ商品の追加は数量加算。
type CartItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    string `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID int64  `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int64  `gorm:"not null" json:"quantity"`
}
