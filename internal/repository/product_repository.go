package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧の絞り込み条件
type ProductListFilter struct {
	Status string // "active" / "inactive"（それ以外は無視）
	Stock  string // "low" / "out"（それ以外は無視）
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, f ProductListFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	//行ロック付きで1件取得する（SELECT ... FOR UPDATE）。
	//トランザクション内でのみ使うこと。ロックはcommit/rollbackまで保持される。
	FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
