package server

import (
	"inventory/internal/config"
	"inventory/internal/handler"
	"inventory/internal/middleware"
	"inventory/internal/repository"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
}

// /login以外はすべてBearer認証＋token_versionチェックを通す
func (s *Server) RegisterRoutes(cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	h.Auth.RegisterPublicRoutes(s.echo)

	api := s.echo.Group("")
	api.Use(middleware.AuthJWT(cfg))
	api.Use(middleware.TokenVersionGuard(userRepo))

	h.Auth.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.Customer.RegisterRoutes(api)
	h.Order.RegisterRoutes(api)
	h.Dashboard.RegisterRoutes(api)
}
