package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("created_at >= ?", since).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

// price_at_purchase×quantityの総和。NULL価格の明細はSUMから落ちる（小計0扱いと同じ）。
func (r *DashboardGormRepository) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(oi.price_at_purchase * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ?`, since).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Revenue, nil
}

func (r *DashboardGormRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("status = ?", model.ProductStatusActive).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *DashboardGormRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 月別バケットはusecase側で組むので、ここは明細を平らに返すだけ
func (r *DashboardGormRepository) ListItemRevenue(ctx context.Context) ([]repo.ItemRevenueRow, error) {
	var rows []repo.ItemRevenueRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.created_at AS order_created_at,
		       oi.quantity AS quantity,
		       oi.price_at_purchase AS price_at_purchase
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id`).
		Scan(&rows).Error
	if err != nil {
		return []repo.ItemRevenueRow{}, err
	}
	return rows, nil
}

func (r *DashboardGormRepository) TopProducts(ctx context.Context, limit int) ([]repo.TopProductRow, error) {
	var rows []repo.TopProductRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT oi.product_id AS product_id,
		       p.name AS name,
		       SUM(oi.quantity) AS total_quantity
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY oi.product_id, p.name
		ORDER BY total_quantity DESC
		LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.TopProductRow{}, err
	}
	return rows, nil
}

func (r *DashboardGormRepository) ListLowStockProducts(ctx context.Context, threshold int64) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("stock asc, id asc").
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *DashboardGormRepository) RecentOrders(ctx context.Context, limit int) ([]repo.RecentOrderRow, error) {
	var rows []repo.RecentOrderRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.id AS id,
		       c.name AS customer_name,
		       o.created_at AS created_at,
		       o.status AS status,
		       COALESCE(SUM(oi.price_at_purchase * oi.quantity), 0) AS total
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY o.id, c.name, o.created_at, o.status
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.RecentOrderRow{}, err
	}
	return rows, nil
}
