package model

type Collection struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`

	//所属商品の数。保存せず読み取り時に集計する
	ProductsCount int64 `gorm:"-" json:"products_count"`
}
