package services

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/jobs"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/queue"
)

// Dispatcher enqueues background jobs.
type Dispatcher interface {
	Dispatch(ctx context.Context, job queue.Job) error
}

// CheckoutService writes orders and lists a customer's orders.
type CheckoutService struct {
	orders *repositories.OrderRepository
	queue  Dispatcher
}

func NewCheckoutService(orders *repositories.OrderRepository, queue Dispatcher) *CheckoutService {
	return &CheckoutService{orders: orders, queue: queue}
}

// Buy writes one "Process" order for the customer and enqueues the
// order-placed notification. The product is not checked beforehand and
// repeated calls create repeated orders. A failed enqueue is logged and
// counted; the order stands and Buy still succeeds.
func (s *CheckoutService) Buy(ctx context.Context, customer auth.Identity, productID uint) (*models.Order, error) {
	order := &models.Order{
		CustomerID: customer.ID,
		ProductID:  productID,
		Status:     models.OrderStatusProcess,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	job := &jobs.OrderPlaced{
		OrderID:   order.ID,
		ProductID: order.ProductID,
		Email:     customer.Email,
		Name:      customer.Name,
	}
	if err := s.queue.Dispatch(ctx, job); err != nil {
		metrics.NotificationsTotal.WithLabelValues("queue", "dispatch_failed").Inc()
		logger.WithCtx(ctx).Error("checkout: notification not dispatched",
			"order_id", order.ID, "error", err)
	}

	return order, nil
}

// Orders lists the customer's orders with product and customer details.
func (s *CheckoutService) Orders(ctx context.Context, customer auth.Identity) ([]models.Order, error) {
	return s.orders.ForCustomer(ctx, customer.ID)
}
