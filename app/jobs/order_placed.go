// Package jobs holds the storefront's queue jobs.
package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/notifications"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/notification"
	"github.com/shashiranjanraj/storefront/pkg/queue"
)

// OrderPlacedName is the queue registry key of OrderPlaced.
const OrderPlacedName = "order.placed"

// Notifier sends a notification to an address.
type Notifier interface {
	Send(ctx context.Context, address string, n notification.Notification) []error
}

// OrderFinder loads an order with its product.
type OrderFinder interface {
	FindWithProduct(ctx context.Context, id uint) (*models.Order, error)
}

// OrderPlaced notifies a customer that their order was written. It runs
// once; a failure is recorded in failed_jobs and never retried.
type OrderPlaced struct {
	OrderID   uint   `json:"order_id"`
	ProductID uint   `json:"product_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`

	notifier Notifier
	orders   OrderFinder
}

func (*OrderPlaced) JobName() string  { return OrderPlacedName }
func (*OrderPlaced) MaxAttempts() int { return 1 }

func (j *OrderPlaced) Handle(ctx context.Context) error {
	if j.notifier == nil {
		return errors.New("jobs: order placed: no notifier")
	}

	msg := &notifications.OrderPlaced{OrderID: j.OrderID, ProductID: j.ProductID, Name: j.Name}
	if j.orders != nil {
		// The product name is a nicety; the message still goes out without it.
		if order, err := j.orders.FindWithProduct(ctx, j.OrderID); err == nil && order.Product != nil {
			msg.ProductName = order.Product.Name
		} else if err != nil {
			logger.WithCtx(ctx).Warn("jobs: order placed: product lookup failed", "order_id", j.OrderID, "error", err)
		}
	}

	if errs := j.notifier.Send(ctx, j.Email, msg); len(errs) > 0 {
		return fmt.Errorf("jobs: order placed #%d: %w", j.OrderID, errors.Join(errs...))
	}
	return nil
}

// Register makes every storefront job decodable by q.
func Register(q *queue.Manager, notifier Notifier, orders OrderFinder) {
	q.Register(OrderPlacedName, func() queue.Job {
		return &OrderPlaced{notifier: notifier, orders: orders}
	})
}
