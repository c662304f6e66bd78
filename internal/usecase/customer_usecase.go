package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
	tx           repo.TransactionManager
}

func NewCustomerUsecase(customerRepo repo.CustomerRepository, tx repo.TransactionManager) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo, tx: tx}
}

type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func validateCustomerInput(in CustomerInput) (CustomerInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return in, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(in.Name) > 100 {
		return in, NewHTTPError(http.StatusBadRequest, "name too long")
	}
	//形式チェックはゆるく（@が入っていればよし）
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return in, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Phone) > 15 {
		return in, NewHTTPError(http.StatusBadRequest, "phone too long")
	}
	return in, nil
}

func (u *CustomerUsecase) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	items, err := u.customerRepo.List(ctx)
	if err != nil {
		return []model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CustomerUsecase) GetCustomer(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	c, err := u.customerRepo.FindByID(ctx, customerID)
	if err == repo.ErrNotFound {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CustomerUsecase) CreateCustomer(ctx context.Context, in CustomerInput) (model.Customer, error) {
	in, err := validateCustomerInput(in)
	if err != nil {
		return model.Customer{}, err
	}

	//メール重複チェック
	_, exists, err := u.customerRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "email already exists")
	}

	c, err := u.customerRepo.Create(ctx, model.Customer{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// PUT（全項目更新）
func (u *CustomerUsecase) UpdateCustomer(ctx context.Context, customerID int64, in CustomerInput) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	in, err := validateCustomerInput(in)
	if err != nil {
		return model.Customer{}, err
	}

	c, err := u.customerRepo.FindByID(ctx, customerID)
	if err == repo.ErrNotFound {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//自分以外とのメール重複チェック
	other, exists, err := u.customerRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists && other.ID != customerID {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "email already exists")
	}

	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address

	if err := u.customerRepo.Update(ctx, c); err != nil {
		if err == repo.ErrNotFound {
			return model.Customer{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 顧客削除。顧客の注文と明細も一緒に消す（FKカスケード相当）。
func (u *CustomerUsecase) DeleteCustomer(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Customers().FindByID(ctx, customerID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細→注文→顧客の順で消す
		if err := r.OrderItems().DeleteByCustomerID(ctx, customerID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().DeleteByCustomerID(ctx, customerID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Customers().Delete(ctx, customerID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
