package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// 合計金額は保存しない（明細から都度計算する）
type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64       `gorm:"not null;index" json:"customer_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}

// statusとして受け付けられる値か
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCanceled:
		return true
	default:
		return false
	}
}
