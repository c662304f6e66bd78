package repository

import (
	"context"

	"inventory/internal/domain/model"
)

type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)

	//メール重複チェック用
	FindByEmail(ctx context.Context, email string) (model.Customer, bool, error)

	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, id int64) error
}
