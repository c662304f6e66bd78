package server

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory/internal/middleware"
)

type Server struct {
	echo *echo.Echo
}

func New(logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(logger))

	return &Server{echo: e}
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(port string) error {
	return s.echo.Start(":" + port)
}
