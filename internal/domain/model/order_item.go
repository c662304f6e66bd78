package model

import "github.com/shopspring/decimal"

// 注文の明細
// 購入時点の価格を保存する。以後の商品価格の変更には影響されない。
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`

	//明細差し替え時に価格が送られないことがあるためNULL可
	PriceAtPurchase *decimal.Decimal `gorm:"type:numeric(10,2)" json:"price_at_purchase"`
}

// 小計（価格がNULLなら0）
func (i OrderItem) Subtotal() decimal.Decimal {
	if i.PriceAtPurchase == nil {
		return decimal.Zero
	}
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(i.Quantity))
}
