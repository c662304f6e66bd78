package repository

import (
	"context"

	"gorm.io/gorm"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id AS id, orders.customer_id AS customer_id, customers.name AS customer_name, orders.status AS status, orders.created_at AS created_at").
		Joins("JOIN customers ON customers.id = orders.customer_id")
}

// 新しい順。statusが空なら全件。
func (r *OrderGormRepository) List(ctx context.Context, status string) ([]repo.OrderWithCustomer, error) {
	q := r.listQuery(ctx)
	if status != "" {
		q = q.Where("orders.status = ?", status)
	}

	var rows []repo.OrderWithCustomer
	if err := q.Order("orders.created_at desc, orders.id desc").Scan(&rows).Error; err != nil {
		return []repo.OrderWithCustomer{}, err
	}
	return rows, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (repo.OrderWithCustomer, error) {
	var rows []repo.OrderWithCustomer
	err := r.listQuery(ctx).Where("orders.id = ?", orderID).Limit(1).Scan(&rows).Error
	if err != nil {
		return repo.OrderWithCustomer{}, err
	}
	if len(rows) == 0 {
		return repo.OrderWithCustomer{}, repo.ErrNotFound
	}
	return rows[0], nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&model.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&model.Order{}).Error
}
