package usecase

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	repo "inventory/internal/repository"
)

// 現在時刻（テストで差し替えられるように注入する）
type Clock interface {
	Now() time.Time
}

type DashboardUsecase struct {
	dashRepo repo.DashboardRepository
	clock    Clock
}

func NewDashboardUsecase(dashRepo repo.DashboardRepository, clock Clock) *DashboardUsecase {
	return &DashboardUsecase{dashRepo: dashRepo, clock: clock}
}

type MonthlyRevenueEntry struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type LowStockProductOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

type DashboardOutput struct {
	OrdersThisMonth     int64                   `json:"orders_this_month"`
	RevenueThisMonth    decimal.Decimal         `json:"revenue_this_month"`
	ActiveProductsCount int64                   `json:"active_products_count"`
	TotalCustomers      int64                   `json:"total_customers"`
	MonthlyRevenue      []MonthlyRevenueEntry   `json:"monthly_revenue"`
	TopProducts         []repo.TopProductRow    `json:"top_products"`
	LowStockProducts    []LowStockProductOutput `json:"low_stock_products"`
	RecentOrders        []repo.RecentOrderRow   `json:"recent_orders"`
}

// 毎回その場で集計する（キャッシュしない）。
// 売上はすべてprice_at_purchase（購入時価格）から計算する。
func (u *DashboardUsecase) GetDashboard(ctx context.Context) (DashboardOutput, error) {
	now := u.clock.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	ordersThisMonth, err := u.dashRepo.CountOrdersSince(ctx, startOfMonth)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	revenueThisMonth, err := u.dashRepo.RevenueSince(ctx, startOfMonth)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	activeProducts, err := u.dashRepo.CountActiveProducts(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalCustomers, err := u.dashRepo.CountCustomers(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	monthly, err := u.monthlyRevenue(ctx)
	if err != nil {
		return DashboardOutput{}, err
	}

	topProducts, err := u.dashRepo.TopProducts(ctx, 5)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lowStock, err := u.dashRepo.ListLowStockProducts(ctx, 5)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	lowStockOut := make([]LowStockProductOutput, 0, len(lowStock))
	for _, p := range lowStock {
		lowStockOut = append(lowStockOut, LowStockProductOutput{ID: p.ID, Name: p.Name, Stock: p.Stock})
	}

	recent, err := u.dashRepo.RecentOrders(ctx, 5)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		OrdersThisMonth:     ordersThisMonth,
		RevenueThisMonth:    revenueThisMonth,
		ActiveProductsCount: activeProducts,
		TotalCustomers:      totalCustomers,
		MonthlyRevenue:      monthly,
		TopProducts:         topProducts,
		LowStockProducts:    lowStockOut,
		RecentOrders:        recent,
	}, nil
}

// 全期間の売上を暦月でバケットにして古い順に返す
func (u *DashboardUsecase) monthlyRevenue(ctx context.Context) ([]MonthlyRevenueEntry, error) {
	rows, err := u.dashRepo.ListItemRevenue(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	buckets := map[time.Time]decimal.Decimal{}
	for _, r := range rows {
		if r.PriceAtPurchase == nil {
			continue
		}
		t := r.OrderCreatedAt
		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month] = buckets[month].Add(r.PriceAtPurchase.Mul(decimal.NewFromInt(r.Quantity)))
	}

	months := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	entries := make([]MonthlyRevenueEntry, 0, len(months))
	for _, m := range months {
		entries = append(entries, MonthlyRevenueEntry{
			Month:   m.Format("Jan"),
			Revenue: buckets[m],
		})
	}
	return entries, nil
}
