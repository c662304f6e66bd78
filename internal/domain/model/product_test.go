package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_IsLowStock(t *testing.T) {
	assert.True(t, Product{Stock: 0}.IsLowStock())
	assert.True(t, Product{Stock: 4}.IsLowStock())
	assert.False(t, Product{Stock: 5}.IsLowStock())
	assert.False(t, Product{Stock: 100}.IsLowStock())
}

func TestProduct_IsOutOfStock(t *testing.T) {
	assert.True(t, Product{Stock: 0}.IsOutOfStock())
	assert.False(t, Product{Stock: 1}.IsOutOfStock())
}

func TestProduct_IsActive_CaseInsensitive(t *testing.T) {
	assert.True(t, Product{Status: "active"}.IsActive())
	assert.True(t, Product{Status: "Active"}.IsActive())
	assert.True(t, Product{Status: "ACTIVE"}.IsActive())
	assert.False(t, Product{Status: "inactive"}.IsActive())
	assert.False(t, Product{Status: ""}.IsActive())
}

func TestValidProductStatus(t *testing.T) {
	assert.True(t, ValidProductStatus("active"))
	assert.True(t, ValidProductStatus("inactive"))
	assert.False(t, ValidProductStatus("archived"))
	assert.False(t, ValidProductStatus(""))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "canceled"} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("unknown"))
	assert.False(t, ValidOrderStatus("PENDING"))
	assert.False(t, ValidOrderStatus(""))
}

func TestOrderItem_Subtotal(t *testing.T) {
	price := decimal.RequireFromString("9.99")
	item := OrderItem{Quantity: 3, PriceAtPurchase: &price}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("29.97")))
}

// 価格NULLの明細は小計0として扱う
func TestOrderItem_Subtotal_NilPrice(t *testing.T) {
	item := OrderItem{Quantity: 3, PriceAtPurchase: nil}
	assert.True(t, item.Subtotal().IsZero())
}
