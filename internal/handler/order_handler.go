package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"inventory/internal/usecase"
)

// OrderCreateRequest はPOST /ordersの入力。
// priceはサーバ側で購入時点の値を確定するので受け取らない。
type OrderCreateRequest struct {
	CustomerID int64                    `json:"customer"`
	Items      []OrderItemCreateRequest `json:"items"`
}

type OrderItemCreateRequest struct {
	ProductID int64 `json:"product"`
	Quantity  int64 `json:"quantity"`
}

// OrderPatchRequest はPATCH用。nilのフィールドは触らない。
type OrderPatchRequest struct {
	Status *string                    `json:"status"`
	Items  *[]OrderItemReplaceRequest `json:"items"`
}

type OrderItemReplaceRequest struct {
	ProductID       int64            `json:"product"`
	Quantity        int64            `json:"quantity"`
	PriceAtPurchase *decimal.Decimal `json:"price_at_purchase"`
}

// /orders のAPI
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.listOrders)
	g.POST("/orders", h.createOrder)
	g.GET("/orders/:id", h.getOrder)
	g.PATCH("/orders/:id", h.updateOrder)
	g.DELETE("/orders/:id", h.deleteOrder)
}

func (h *OrderHandler) listOrders(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) getOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) createOrder(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderLineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) updateOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req OrderPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	in := usecase.UpdateOrderInput{Status: req.Status}
	if req.Items != nil {
		items := make([]usecase.ReplaceOrderItemInput, 0, len(*req.Items))
		for _, it := range *req.Items {
			items = append(items, usecase.ReplaceOrderItemInput{
				ProductID:       it.ProductID,
				Quantity:        it.Quantity,
				PriceAtPurchase: it.PriceAtPurchase,
			})
		}
		in.Items = &items
	}

	out, err := h.uc.UpdateOrder(c.Request().Context(), userID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) deleteOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
