package usecase_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inventory/internal/domain/model"
	"inventory/internal/usecase"
)

// SQLiteのインメモリDBを使う。
// SQLiteはSELECT ... FOR UPDATEを解釈できないので、クエリ実行前に
// ロック句を落とす（単一コネクションなので挙動は変わらない）。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Callback().Query().Before("gorm:query").Register("drop_for_update", func(d *gorm.DB) {
		delete(d.Statement.Clauses, "FOR UPDATE")
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	))

	return db
}

func mustCustomer(t *testing.T, db *gorm.DB, name string, email string) model.Customer {
	t.Helper()

	c := model.Customer{
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func mustProduct(t *testing.T, db *gorm.DB, name string, price string, stock int64, status model.ProductStatus) model.Product {
	t.Helper()

	p := model.Product{
		Name:   name,
		SKU:    "SKU-" + name,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Status: status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func stockOf(t *testing.T, db *gorm.DB, productID int64) int64 {
	t.Helper()

	var p model.Product
	require.NoError(t, db.First(&p, productID).Error)
	return p.Stock
}

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()

	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Contains(t, he.Message, want)
}
