package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type ShippingController struct {
	shipping *services.ShippingService
}

func NewShippingController(shipping *services.ShippingService) *ShippingController {
	return &ShippingController{shipping: shipping}
}

func (h *ShippingController) Provinces(c *ctx.Context) {
	provinces, err := h.shipping.Provinces(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(provinces)
}

func (h *ShippingController) Cities(c *ctx.Context) {
	cities, err := h.shipping.Cities(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cities)
}

func (h *ShippingController) Cost(c *ctx.Context) {
	cost, err := h.shipping.Cost(c.Context(), c.Query("destination"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(cost)
}
