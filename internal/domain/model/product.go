package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// この数を下回ると「残りわずか」
const LowStockThreshold = 5

type Product struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`

	//SKU（業務上の商品コード。現行スキーマではユニーク制約なし）
	SKU string `gorm:"type:varchar(20);not null" json:"sku"`

	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock     int64           `gorm:"not null" json:"stock"`
	Status    ProductStatus   `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 在庫が少ないか（5未満）
func (p Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// 在庫切れか
func (p Product) IsOutOfStock() bool {
	return p.Stock == 0
}

// 販売中か（statusの大文字小文字は区別しない）
func (p Product) IsActive() bool {
	return strings.EqualFold(string(p.Status), string(ProductStatusActive))
}

// statusとして受け付けられる値か
func ValidProductStatus(s string) bool {
	switch ProductStatus(s) {
	case ProductStatusActive, ProductStatusInactive:
		return true
	default:
		return false
	}
}
