package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HikkiElf/cart-manager/internal/logging"
	"github.com/HikkiElf/cart-manager/internal/service"
	"github.com/HikkiElf/cart-manager/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.CartLineRequest
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, l, "add_to_cart_error", err)
	}

	if err := h.Svc.AddLine(ctx, *req.UserID, *req.ProductID, *req.Quantity); err != nil {
		return h.fail(c, l, "add_to_cart_error", err)
	}

	l.Info("item added to cart", "user_id", *req.UserID, "product_id", *req.ProductID)
	return c.JSON(http.StatusCreated, transport.MessageResponse{Message: "Item added to cart"})
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var req transport.CartLineRequest
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, l, "update_cart_error", err)
	}

	if err := h.Svc.UpdateLine(ctx, *req.UserID, *req.ProductID, *req.Quantity); err != nil {
		return h.fail(c, l, "update_cart_error", err)
	}

	l.Info("cart updated", "user_id", *req.UserID, "product_id", *req.ProductID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Cart updated"})
}

func (h *CartHTTP) DeleteFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete")

	var req transport.RemoveLineRequest
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, l, "delete_from_cart_error", err)
	}

	if err := h.Svc.RemoveLine(ctx, *req.UserID, *req.ProductID); err != nil {
		return h.fail(c, l, "delete_from_cart_error", err)
	}

	l.Info("item removed from cart", "user_id", *req.UserID, "product_id", *req.ProductID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Item removed from cart"})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := paramID(c, "user_id")
	if err != nil {
		return h.fail(c, l, "get_cart_error", err)
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return h.fail(c, l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, transport.CartResponse{UserID: userID, Items: items})
}

func (h *CartHTTP) GetCartLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_line")

	userID, err := paramID(c, "user_id")
	if err != nil {
		return h.fail(c, l, "get_cart_line_error", err)
	}
	productID, err := paramID(c, "product_id")
	if err != nil {
		return h.fail(c, l, "get_cart_line_error", err)
	}

	line, err := h.Svc.GetLine(ctx, userID, productID)
	if err != nil {
		return h.fail(c, l, "get_cart_line_error", err)
	}

	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.Join(service.ErrValidation, errors.New("invalid body"))
	}
	if err := c.Validate(req); err != nil {
		return errors.Join(service.ErrValidation, err)
	}
	return nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errors.Join(service.ErrValidation, errors.New(name+" is not an integer"))
	}
	return id, nil
}

// fail logs err and writes the error body. Engine details stay in the log;
// the client only sees the error kind and a fixed message.
func (h *CartHTTP) fail(c echo.Context, l *slog.Logger, event string, err error) error {
	kind := service.Kind(err)
	status, msg := http.StatusInternalServerError, "Database error"

	switch kind {
	case service.KindValidation:
		status, msg = http.StatusBadRequest, validationMessage(err)
	case service.KindNotFound:
		status, msg = http.StatusNotFound, "Item not found in cart"
	case service.KindDuplicateKey:
		msg = "Item already in cart"
	case service.KindForeignKey:
		msg = "Unknown user or product"
	}

	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "kind", kind, "error", err)
	} else {
		l.Warn(event, "status", status, "kind", kind, "error", err)
	}

	return c.JSON(status, transport.ErrorResponse{Status: "error", Code: kind, Message: msg})
}

func validationMessage(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			if !errors.Is(e, service.ErrValidation) {
				return e.Error()
			}
		}
	}
	return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
}
