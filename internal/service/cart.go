package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/HikkiElf/cart-manager/internal/logging"
	"github.com/HikkiElf/cart-manager/internal/metrics"
	"github.com/HikkiElf/cart-manager/internal/models"
	"github.com/HikkiElf/cart-manager/internal/mykafka"
)

const publishTimeout = 5 * time.Second

type CartRepo interface {
	AddLine(ctx context.Context, line *models.CartLine) error
	UpdateLine(ctx context.Context, line *models.CartLine) error
	RemoveLine(ctx context.Context, userID, productID int64) error
	GetLine(ctx context.Context, userID, productID int64) (*models.CartLine, error)
	GetCart(ctx context.Context, userID int64) ([]models.CartLine, error)
}

type Publisher interface {
	Publish(ctx context.Context, ev mykafka.CartEvent) error
}

// CartService holds no cart state: every call is one statement against the
// repository, so concurrent calls share nothing but the connection pool.
type CartService struct {
	Repo    CartRepo
	Events  Publisher
	Metrics *metrics.Metrics
}

func (s *CartService) AddLine(ctx context.Context, userID, productID, quantity int64) (err error) {
	defer s.observe("add", time.Now(), &err)

	if err := validateLine(userID, productID); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	line := models.CartLine{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.Repo.AddLine(ctx, &line); err != nil {
		return fromRepo(err)
	}

	s.publish(ctx, mykafka.NewCartEvent(mykafka.EventLineAdded, userID, productID, quantity))
	return nil
}

func (s *CartService) UpdateLine(ctx context.Context, userID, productID, quantity int64) (err error) {
	defer s.observe("update", time.Now(), &err)

	if err := validateLine(userID, productID); err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	line := models.CartLine{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.Repo.UpdateLine(ctx, &line); err != nil {
		return fromRepo(err)
	}

	s.publish(ctx, mykafka.NewCartEvent(mykafka.EventLineUpdated, userID, productID, quantity))
	return nil
}

func (s *CartService) RemoveLine(ctx context.Context, userID, productID int64) (err error) {
	defer s.observe("remove", time.Now(), &err)

	if err := validateLine(userID, productID); err != nil {
		return err
	}

	if err := s.Repo.RemoveLine(ctx, userID, productID); err != nil {
		return fromRepo(err)
	}

	s.publish(ctx, mykafka.NewCartEvent(mykafka.EventLineRemoved, userID, productID, 0))
	return nil
}

func (s *CartService) GetLine(ctx context.Context, userID, productID int64) (_ *models.CartLine, err error) {
	defer s.observe("get_line", time.Now(), &err)

	if err := validateLine(userID, productID); err != nil {
		return nil, err
	}

	line, err := s.Repo.GetLine(ctx, userID, productID)
	if err != nil {
		return nil, fromRepo(err)
	}
	return line, nil
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (_ []models.CartLine, err error) {
	defer s.observe("get_cart", time.Now(), &err)

	if err := validateColumn("user_id", userID); err != nil {
		return nil, err
	}

	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, fromRepo(err)
	}
	return items, nil
}

// The cart columns are INTEGER, so ids and quantities must fit in int4.
const maxColumnValue = math.MaxInt32

func validateLine(userID, productID int64) error {
	if err := validateColumn("user_id", userID); err != nil {
		return err
	}
	return validateColumn("product_id", productID)
}

// Zero is not a valid quantity: a line is dropped with RemoveLine.
func validateQuantity(quantity int64) error {
	return validateColumn("quantity", quantity)
}

func validateColumn(name string, v int64) error {
	if v < 1 || v > maxColumnValue {
		return fmt.Errorf("%w: %s must be between 1 and %d", ErrValidation, name, maxColumnValue)
	}
	return nil
}

func (s *CartService) observe(op string, start time.Time, err *error) {
	s.Metrics.Observe(op, Kind(*err), time.Since(start))
}

// publish runs after the write is committed. A failed publish is logged and
// never changes the outcome of the request.
func (s *CartService) publish(ctx context.Context, ev mykafka.CartEvent) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.Events.Publish(pubCtx, ev); err != nil {
		logging.FromContext(ctx).Error("cart_event_publish_error", "type", ev.Type, "user_id", ev.UserID, "product_id", ev.ProductID, "error", err)
	}
}
