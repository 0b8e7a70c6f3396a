package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

// OrderController serves the authenticated routes.
type OrderController struct {
	checkout *services.CheckoutService
	payment  *services.PaymentService
}

func NewOrderController(checkout *services.CheckoutService, payment *services.PaymentService) *OrderController {
	return &OrderController{checkout: checkout, payment: payment}
}

// Buy handles POST /buy/{id}.
func (h *OrderController) Buy(c *ctx.Context) {
	customer, ok := c.Identity()
	if !ok {
		c.Fail(apperr.New(apperr.Unauthenticated))
		return
	}
	productID, err := services.ParseID(c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}

	if _, err := h.checkout.Buy(c.Context(), customer, productID); err != nil {
		c.Fail(err)
		return
	}
	c.Created("berhasil melakukan checkout", nil)
}

// Index handles GET /order.
func (h *OrderController) Index(c *ctx.Context) {
	customer, ok := c.Identity()
	if !ok {
		c.Fail(apperr.New(apperr.Unauthenticated))
		return
	}

	orders, err := h.checkout.Orders(c.Context(), customer)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(orders)
}

// PaymentToken handles POST /generate-midtrans-token?cost=.
func (h *OrderController) PaymentToken(c *ctx.Context) {
	customer, ok := c.Identity()
	if !ok {
		c.Fail(apperr.New(apperr.Unauthenticated))
		return
	}

	resp, err := h.payment.RequestToken(c.Context(), customer.ID, c.Query("cost"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created("", resp)
}
