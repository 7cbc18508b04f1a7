package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラをまとめて受け取る
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Collection *handler.CollectionHandler
	Review     *handler.ReviewHandler
	Cart       *handler.CartHandler
	Customer   *handler.CustomerHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
}

// echoインスタンスを組み立てる（起動はしない。テストからも使う）
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	RegisterRoutes(e, cfg, h)

	return e
}

// サーバ起動
func Start(cfg config.Config, h Handlers) error {
	e := New(cfg, h)
	return e.Start(":" + cfg.Port)
}
