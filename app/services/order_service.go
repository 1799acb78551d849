package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/pkg/event"
	"github.com/aurigalabs/storefront/pkg/metrics"
)

// ErrEmptyOrder rejects orders without line items.
var ErrEmptyOrder = errors.New("services: order has no items")

// OrderStore is the persistence surface the order service needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	FindByNumber(ctx context.Context, number string) (models.Order, error)
	Count(ctx context.Context) (int64, error)
	ByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Order, repositories.Pagination, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// OrderService owns order creation and the order-number assignment that
// runs exactly once per order.
type OrderService struct {
	orders OrderStore
	now    func() time.Time
}

func NewOrderService(orders OrderStore) *OrderService {
	return &OrderService{orders: orders, now: time.Now}
}

// NewOrderServiceWithClock injects the clock used for the timestamp
// component of generated order numbers.
func NewOrderServiceWithClock(orders OrderStore, now func() time.Time) *OrderService {
	return &OrderService{orders: orders, now: now}
}

// Place assigns an order number (when not already set), fills defaults,
// totals the line items, and persists the order.
//
// The number is "ORD-<unix millis>-<count+1, zero-padded to 4>". The
// sequence component reads the current order count, which is racy: two
// orders created in the same millisecond can collide. The unique index on
// orderNumber turns that collision into a creation failure
// (repositories.ErrDuplicate) rather than a silent duplicate; there is no
// retry here.
func (s *OrderService) Place(ctx context.Context, o *models.Order) error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}

	if o.OrderNumber == "" {
		count, err := s.orders.Count(ctx)
		if err != nil {
			return fmt.Errorf("services: order count for number: %w", err)
		}
		o.OrderNumber = fmt.Sprintf("ORD-%d-%04d", s.now().UnixMilli(), count+1)
	}

	if o.Status == "" {
		o.Status = models.OrderPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentPending
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}

	var subtotal float64
	for i := range o.Items {
		item := &o.Items[i]
		item.Total = item.Price * float64(item.Quantity)
		subtotal += item.Total
	}
	o.Subtotal = subtotal
	o.Total = subtotal + o.Tax + o.Shipping - o.Discount

	if err := s.orders.Create(ctx, o); err != nil {
		return err
	}
	metrics.OrderNumbersIssued.Inc()
	event.Fire(event.OrderCreated, *o)
	return nil
}

func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (models.Order, error) {
	return s.orders.FindByNumber(ctx, number)
}

func (s *OrderService) ListForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Order, repositories.Pagination, error) {
	return s.orders.ByUser(ctx, userID, page, limit)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case models.OrderPending, models.OrderConfirmed, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled, models.OrderRefunded:
	default:
		return fmt.Errorf("services: unknown order status %q", status)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
