package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	auditRepo   repo.AuditLogRepository
	tx          repo.TransactionManager
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		auditRepo:   auditRepo,
		tx:          tx,
	}
}

// GET /productsの入力
type ListProductsInput struct {
	Status string // "active" / "inactive"
	Stock  string // "low" / "out"
}

// 派生値（is_low_stockなど)は保存せず、返すときに計算する
type ProductOutput struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
	Status       string          `json:"status"`
	IsLowStock   bool            `json:"is_low_stock"`
	IsOutOfStock bool            `json:"is_out_of_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Price:        p.Price,
		Stock:        p.Stock,
		Status:       string(p.Status),
		IsLowStock:   p.IsLowStock(),
		IsOutOfStock: p.IsOutOfStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]ProductOutput, error) {
	//クォート付きで送られてくることがあるので剥がす
	status := strings.Trim(strings.TrimSpace(in.Status), `"`)

	items, err := u.productRepo.List(ctx, repo.ProductListFilter{
		Status: status,
		Stock:  strings.TrimSpace(in.Stock),
	})
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		outs = append(outs, toProductOutput(p))
	}
	return outs, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductOutput(p), nil
}

type CreateProductInput struct {
	Name   string
	SKU    string
	Price  decimal.Decimal
	Stock  int64
	Status string
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (ProductOutput, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)

	if name == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(name) > 100 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if sku == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "sku required")
	}
	if len(sku) > 20 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "sku too long")
	}
	if in.Price.IsNegative() {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	status := in.Status
	if status == "" {
		status = string(model.ProductStatusActive)
	}
	if !model.ValidProductStatus(status) {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:      name,
		SKU:       sku,
		Price:     in.Price,
		Stock:     in.Stock,
		Status:    model.ProductStatus(status),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductOutput(p), nil
}

// PATCH用。nilのフィールドは変更しない。
type PatchProductInput struct {
	Name   *string
	SKU    *string
	Price  *decimal.Decimal
	Stock  *int64
	Status *string
}

func (u *ProductUsecase) PatchProduct(ctx context.Context, actorUserID int64, productID int64, in PatchProductInput) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	oldStock := p.Stock

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > 100 {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid name")
		}
		p.Name = name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" || len(sku) > 20 {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sku")
		}
		p.SKU = sku
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		p.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
		}
		p.Stock = *in.Stock
	}
	if in.Status != nil {
		if !model.ValidProductStatus(*in.Status) {
			return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		p.Status = model.ProductStatus(*in.Status)
	}

	p.UpdatedAt = time.Now()
	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//在庫を直接書き換えたときは操作ログを残す
	if p.Stock != oldStock {
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   fmt.Sprintf(`{"stock":%d}`, oldStock),
			AfterJSON:    fmt.Sprintf(`{"stock":%d}`, p.Stock),
			CreatedAt:    time.Now(),
		}); err != nil {
			return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return toProductOutput(p), nil
}

// 商品削除。参照している注文明細も一緒に消す（FKカスケード相当）。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.OrderItems().DeleteByProductID(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		err := r.Products().Delete(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
