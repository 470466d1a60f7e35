package transport

import "github.com/HikkiElf/cart-manager/internal/models"

// Pointers tell a missing field apart from an explicit zero.
type CartLineRequest struct {
	UserID    *int64 `json:"user_id"    validate:"required"`
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  *int64 `json:"quantity"   validate:"required"`
}

type RemoveLineRequest struct {
	UserID    *int64 `json:"user_id"    validate:"required"`
	ProductID *int64 `json:"product_id" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CartResponse struct {
	UserID int64             `json:"user_id"`
	Items  []models.CartLine `json:"items"`
}
