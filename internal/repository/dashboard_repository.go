package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"inventory/internal/domain/model"
)

// 明細1件分の売上（月別グラフ用。注文の作成日時で集計する）
type ItemRevenueRow struct {
	OrderCreatedAt  time.Time
	Quantity        int64
	PriceAtPurchase *decimal.Decimal
}

// 販売数の多い商品
type TopProductRow struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// 直近の注文（合計は明細から計算済み）
type RecentOrderRow struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	CreatedAt    time.Time       `json:"created_at"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
}

// ダッシュボードは読み取り専用。毎回その場で集計する。
type DashboardRepository interface {
	CountOrdersSince(ctx context.Context, since time.Time) (int64, error)

	//since以降に作成された注文の売上合計（price_at_purchase × quantityの総和）
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)

	CountActiveProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)

	//全期間の明細売上（月別バケットはusecase側で組む）
	ListItemRevenue(ctx context.Context) ([]ItemRevenueRow, error)

	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
	ListLowStockProducts(ctx context.Context, threshold int64) ([]model.Product, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrderRow, error)
}
