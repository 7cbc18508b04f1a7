package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

// ルーティング登録。各ハンドラが自分のルートを知っている
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Collection.RegisterRoutes(e, cfg)
	h.Review.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Customer.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
}
