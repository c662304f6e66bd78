package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventory/internal/usecase"
)

// /dashboard のAPI
type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

// DI
func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.getDashboard)
}

func (h *DashboardHandler) getDashboard(c echo.Context) error {
	out, err := h.uc.GetDashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
