package repository

import (
	"context"

	"gorm.io/gorm"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	return nil
}

// 商品名は現在の商品マスタから引く（商品が消えた明細は名前なしで残さず消えている前提）
func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemWithProduct, error) {
	var rows []repo.OrderItemWithProduct
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id AS id, order_items.order_id AS order_id, order_items.product_id AS product_id, products.name AS product_name, order_items.quantity AS quantity, order_items.price_at_purchase AS price_at_purchase").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderItemWithProduct{}, err
	}
	return rows, nil
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error
}

func (r *OrderItemGormRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.OrderItem{}).Error
}

func (r *OrderItemGormRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id IN (?)",
			r.db.Model(&model.Order{}).Select("id").Where("customer_id = ?", customerID)).
		Delete(&model.OrderItem{}).Error
}
