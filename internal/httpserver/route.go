package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	CartHandler *CartHTTP
	// Ready reports whether the storage engine is reachable.
	Ready          func(ctx context.Context) error
	MetricsHandler http.Handler
}

func Register(e *echo.Echo, d *Deps) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Validator = newRequestValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(d.MetricsHandler))
	}

	cart := e.Group("/cart")

	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("", d.CartHandler.UpdateCart)
	cart.DELETE("", d.CartHandler.DeleteFromCart)
	cart.GET("/:user_id", d.CartHandler.GetCart)
	cart.GET("/:user_id/items/:product_id", d.CartHandler.GetCartLine)
}
