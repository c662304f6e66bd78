package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inventory/internal/domain/model"
	infraRepo "inventory/internal/infra/repository"
	"inventory/internal/usecase"
)

func newCustomerUsecase(db *gorm.DB) *usecase.CustomerUsecase {
	return usecase.NewCustomerUsecase(
		infraRepo.NewCustomerGormRepository(db),
		infraRepo.NewTxManagerGorm(db),
	)
}

func TestCustomerUsecase_CreateCustomer_Validation(t *testing.T) {
	db := newTestDB(t)
	uc := newCustomerUsecase(db)
	ctx := context.Background()

	_, err := uc.CreateCustomer(ctx, usecase.CustomerInput{Name: " ", Email: "a@b.com"})
	assertErrContains(t, err, "name required")

	_, err = uc.CreateCustomer(ctx, usecase.CustomerInput{Name: "A", Email: "no-at-sign"})
	assertErrContains(t, err, "invalid email")

	_, err = uc.CreateCustomer(ctx, usecase.CustomerInput{
		Name: "A", Email: "a@b.com", Phone: "0123456789012345",
	})
	assertErrContains(t, err, "phone too long")
}

func TestCustomerUsecase_CreateCustomer_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	uc := newCustomerUsecase(db)
	ctx := context.Background()

	_, err := uc.CreateCustomer(ctx, usecase.CustomerInput{Name: "A", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = uc.CreateCustomer(ctx, usecase.CustomerInput{Name: "B", Email: "dup@example.com"})
	assertErrContains(t, err, "email already exists")
}

func TestCustomerUsecase_UpdateCustomer(t *testing.T) {
	db := newTestDB(t)
	uc := newCustomerUsecase(db)
	ctx := context.Background()

	created, err := uc.CreateCustomer(ctx, usecase.CustomerInput{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	other, err := uc.CreateCustomer(ctx, usecase.CustomerInput{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)

	//自分のメールのままの更新はOK
	updated, err := uc.UpdateCustomer(ctx, created.ID, usecase.CustomerInput{
		Name: "A2", Email: "a@example.com", Address: "Tokyo",
	})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, "Tokyo", updated.Address)

	//他人のメールへは変えられない
	_, err = uc.UpdateCustomer(ctx, created.ID, usecase.CustomerInput{
		Name: "A2", Email: other.Email,
	})
	assertErrContains(t, err, "email already exists")
}

func TestCustomerUsecase_GetCustomer_NotFound(t *testing.T) {
	db := newTestDB(t)
	uc := newCustomerUsecase(db)

	_, err := uc.GetCustomer(context.Background(), 999)
	assertErrContains(t, err, "not found")
}

// 顧客削除は注文・明細ごと消す
func TestCustomerUsecase_DeleteCustomer_CascadesOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := newCustomerUsecase(db)

	customer := mustCustomer(t, db, "Tanaka", "tanaka@example.com")
	keep := mustCustomer(t, db, "Sato", "sato@example.com")
	coffee := mustProduct(t, db, "Coffee", "10.00", 100, model.ProductStatusActive)

	orderUC := newOrderUsecase(db)
	_, err := orderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []usecase.OrderLineInput{{ProductID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	kept, err := orderUC.CreateOrder(ctx, usecase.CreateOrderInput{
		CustomerID: keep.ID,
		Items:      []usecase.OrderLineInput{{ProductID: coffee.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCustomer(ctx, customer.ID))

	//消した顧客の注文・明細だけがなくなる
	var orders []model.Order
	require.NoError(t, db.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, kept.ID, orders[0].ID)

	var items []model.OrderItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].OrderID)

	_, err = uc.GetCustomer(ctx, customer.ID)
	assertErrContains(t, err, "not found")
}
