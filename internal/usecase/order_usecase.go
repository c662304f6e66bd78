package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type OrderUsecase struct {
	tx           repo.TransactionManager
	customerRepo repo.CustomerRepository
}

func NewOrderUsecase(tx repo.TransactionManager, customerRepo repo.CustomerRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, customerRepo: customerRepo}
}

type OrderLineInput struct {
	ProductID int64
	Quantity  int64
}

type CreateOrderInput struct {
	CustomerID int64
	Items      []OrderLineInput
}

type OrderItemOutput struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	CustomerID   int64             `json:"customer"`
	CustomerName string            `json:"customer_name"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	Total        decimal.Decimal   `json:"total"`
	Items        []OrderItemOutput `json:"items"`
}

// 注文作成。
// 全明細の検証・在庫減算・明細作成を1トランザクションで行い、
// 1行でも失敗したら注文ごとrollbackする（部分的な在庫減算は残らない）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if in.CustomerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid customer")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	for _, l := range in.Items {
		if l.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		if l.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
	}

	//顧客の存在確認
	customer, err := u.customerRepo.FindByID(ctx, in.CustomerID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID: in.CustomerID,
			Status:     model.OrderStatusPending,
			CreatedAt:  now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems := make([]model.OrderItem, 0, len(in.Items))
		outItems := make([]OrderItemOutput, 0, len(in.Items))
		total := decimal.Zero

		//明細は渡された順に処理する。同じ商品が2行あれば2回ロック・検証・減算する。
		for _, l := range in.Items {
			//行ロック付きで商品を取得（commit/rollbackまで保持）
			p, err := r.Products().FindByIDForUpdate(ctx, l.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("product %d not found", l.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if !p.IsActive() {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("product %q is not active", p.Name))
			}
			if p.Stock < l.Quantity {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
					"insufficient stock for %q: requested %d, available %d", p.Name, l.Quantity, p.Stock))
			}

			//DB側の式で減算（ロック中なので足りないことはないはずだが、guardは残す）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
					"insufficient stock for %q: requested %d, available %d", p.Name, l.Quantity, p.Stock))
			}

			//購入時点の価格をロック中に読んだ値で固定する
			price := p.Price
			orderItems = append(orderItems, model.OrderItem{
				ProductID:       l.ProductID,
				Quantity:        l.Quantity,
				PriceAtPurchase: &price,
			})

			subtotal := price.Mul(decimal.NewFromInt(l.Quantity))
			total = total.Add(subtotal)
			outItems = append(outItems, OrderItemOutput{
				ProductID:   l.ProductID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				Subtotal:    subtotal,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//採番されたIDを出力に反映
		for i := range orderItems {
			outItems[i].ID = orderItems[i].ID
		}

		out = OrderOutput{
			ID:           orderID,
			CustomerID:   in.CustomerID,
			CustomerName: customer.Name,
			Status:       string(model.OrderStatusPending),
			CreatedAt:    now,
			Total:        total,
			Items:        outItems,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 一覧。statusが有効値以外なら空を返す（エラーにはしない）。
func (u *OrderUsecase) ListOrders(ctx context.Context, status string) ([]OrderOutput, error) {
	if status != "" && !model.ValidOrderStatus(status) {
		return []OrderOutput{}, nil
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx, status)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type ReplaceOrderItemInput struct {
	ProductID       int64
	Quantity        int64
	PriceAtPurchase *decimal.Decimal
}

type UpdateOrderInput struct {
	Status *string
	Items  *[]ReplaceOrderItemInput
}

// 注文更新。
// 明細差し替えは「全削除→作り直し」で、在庫・statusの再検証や在庫減算は行わない
// （在庫は作成時に確保済みという扱い）。
func (u *OrderUsecase) UpdateOrder(ctx context.Context, actorUserID int64, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Status != nil && !model.ValidOrderStatus(*in.Status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.Items != nil {
		for _, l := range *in.Items {
			if l.ProductID <= 0 {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
			}
			if l.Quantity <= 0 {
				return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
			}
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Status != nil && *in.Status != o.Status {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(*in.Status)); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if err := r.AuditLogs().Create(ctx, model.AuditLog{
				ActorUserID:  actorUserID,
				Action:       model.AuditActionUpdateOrderStatus,
				ResourceType: model.AuditResourceOrder,
				ResourceID:   orderID,
				BeforeJSON:   fmt.Sprintf(`{"status":%q}`, o.Status),
				AfterJSON:    fmt.Sprintf(`{"status":%q}`, *in.Status),
				CreatedAt:    time.Now(),
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			o.Status = *in.Status
		}

		if in.Items != nil {
			if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			newItems := make([]model.OrderItem, 0, len(*in.Items))
			for _, l := range *in.Items {
				newItems = append(newItems, model.OrderItem{
					ProductID:       l.ProductID,
					Quantity:        l.Quantity,
					PriceAtPurchase: l.PriceAtPurchase,
				})
			}
			if err := r.OrderItems().CreateBulk(ctx, orderID, newItems); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文削除（明細ごと消す）
func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func toOrderOutput(o repo.OrderWithCustomer, items []repo.OrderItemWithProduct) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		subtotal := it.Subtotal()
		total = total.Add(subtotal)
		outItems = append(outItems, OrderItemOutput{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Subtotal:    subtotal,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		Total:        total,
		Items:        outItems,
	}
}
