package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"inventory/internal/domain/model"
)

// 明細＋商品名（一覧・詳細のJOIN結果）
type OrderItemWithProduct struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	ProductName     string
	Quantity        int64
	PriceAtPurchase *decimal.Decimal
}

// 小計（価格がNULLなら0）
func (r OrderItemWithProduct) Subtotal() decimal.Decimal {
	return model.OrderItem{Quantity: r.Quantity, PriceAtPurchase: r.PriceAtPurchase}.Subtotal()
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]OrderItemWithProduct, error)

	//明細差し替えと注文削除で使う
	DeleteByOrderID(ctx context.Context, orderID int64) error

	//商品削除のカスケード
	DeleteByProductID(ctx context.Context, productID int64) error

	//顧客削除のカスケード（顧客の全注文の明細を消す）
	DeleteByCustomerID(ctx context.Context, customerID int64) error
}
