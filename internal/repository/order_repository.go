package repository

import (
	"context"
	"time"

	"inventory/internal/domain/model"
)

// 注文＋顧客名（一覧・詳細のJOIN結果）
type OrderWithCustomer struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	Status       string
	CreatedAt    time.Time
}

type OrderRepository interface {
	//新しい順。statusが空なら全件。
	List(ctx context.Context, status string) ([]OrderWithCustomer, error)
	FindByID(ctx context.Context, orderID int64) (OrderWithCustomer, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	//顧客削除のカスケード
	DeleteByCustomerID(ctx context.Context, customerID int64) error
}
