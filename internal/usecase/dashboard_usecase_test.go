package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inventory/internal/domain/model"
	infraRepo "inventory/internal/infra/repository"
	"inventory/internal/usecase"
)

func mustOrder(t *testing.T, db *gorm.DB, customerID int64, status model.OrderStatus, createdAt time.Time) model.Order {
	t.Helper()

	o := model.Order{CustomerID: customerID, Status: status, CreatedAt: createdAt}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func mustItem(t *testing.T, db *gorm.DB, orderID int64, productID int64, qty int64, price *string) model.OrderItem {
	t.Helper()

	var p *decimal.Decimal
	if price != nil {
		d := decimal.RequireFromString(*price)
		p = &d
	}
	it := model.OrderItem{OrderID: orderID, ProductID: productID, Quantity: qty, PriceAtPurchase: p}
	require.NoError(t, db.Create(&it).Error)
	return it
}

func strptr(s string) *string { return &s }

func TestDashboardUsecase_GetDashboard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	//「今」は2025-06-15
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	uc := usecase.NewDashboardUsecase(infraRepo.NewDashboardGormRepository(db), &fixedClock{t: now})

	tanaka := mustCustomer(t, db, "Tanaka", "tanaka@example.com")
	sato := mustCustomer(t, db, "Sato", "sato@example.com")

	coffee := mustProduct(t, db, "Coffee", "10.00", 2, model.ProductStatusActive)
	mug := mustProduct(t, db, "Mug", "15.00", 50, model.ProductStatusActive)
	mustProduct(t, db, "Old", "1.00", 0, model.ProductStatusInactive)

	//5月: Coffee x2 @10.00
	may := mustOrder(t, db, tanaka.ID, model.OrderStatusDelivered, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	mustItem(t, db, may.ID, coffee.ID, 2, strptr("10.00"))

	//6月: Mug x1 @15.00 + Coffee x1 @10.00
	june := mustOrder(t, db, sato.ID, model.OrderStatusPending, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC))
	mustItem(t, db, june.ID, mug.ID, 1, strptr("15.00"))
	mustItem(t, db, june.ID, coffee.ID, 1, strptr("10.00"))

	//6月: 価格NULLの明細（売上には数えない）
	juneNil := mustOrder(t, db, tanaka.ID, model.OrderStatusPending, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	mustItem(t, db, juneNil.ID, coffee.ID, 3, nil)

	out, err := uc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.OrdersThisMonth)
	assert.True(t, out.RevenueThisMonth.Equal(decimal.RequireFromString("25.00")), out.RevenueThisMonth.String())
	assert.Equal(t, int64(2), out.ActiveProductsCount)
	assert.Equal(t, int64(2), out.TotalCustomers)

	//月別売上は古い順、ラベルは月名の短縮形
	require.Len(t, out.MonthlyRevenue, 2)
	assert.Equal(t, "May", out.MonthlyRevenue[0].Month)
	assert.True(t, out.MonthlyRevenue[0].Revenue.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, "Jun", out.MonthlyRevenue[1].Month)
	assert.True(t, out.MonthlyRevenue[1].Revenue.Equal(decimal.RequireFromString("25.00")))

	//売れた数量順（Coffee 2+1+3=6、Mug 1）
	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, coffee.ID, out.TopProducts[0].ProductID)
	assert.Equal(t, int64(6), out.TopProducts[0].TotalQuantity)
	assert.Equal(t, mug.ID, out.TopProducts[1].ProductID)

	//在庫5未満（在庫0含む）が在庫の少ない順
	require.Len(t, out.LowStockProducts, 2)
	assert.Equal(t, "Old", out.LowStockProducts[0].Name)
	assert.Equal(t, int64(0), out.LowStockProducts[0].Stock)
	assert.Equal(t, "Coffee", out.LowStockProducts[1].Name)

	//新しい順
	require.Len(t, out.RecentOrders, 3)
	assert.Equal(t, juneNil.ID, out.RecentOrders[0].ID)
	assert.Equal(t, june.ID, out.RecentOrders[1].ID)
	assert.Equal(t, may.ID, out.RecentOrders[2].ID)

	//価格NULLだけの注文は合計0
	assert.True(t, out.RecentOrders[0].Total.IsZero())
	assert.True(t, out.RecentOrders[1].Total.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, "Tanaka", out.RecentOrders[0].CustomerName)
}

func TestDashboardUsecase_GetDashboard_Empty(t *testing.T) {
	db := newTestDB(t)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := usecase.NewDashboardUsecase(infraRepo.NewDashboardGormRepository(db), &fixedClock{t: now})

	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), out.OrdersThisMonth)
	assert.True(t, out.RevenueThisMonth.IsZero())
	assert.Empty(t, out.MonthlyRevenue)
	assert.Empty(t, out.TopProducts)
	assert.Empty(t, out.LowStockProducts)
	assert.Empty(t, out.RecentOrders)
}
