package routes

import (
	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Controllers are the handlers mounted by RegisterAPI.
type Controllers struct {
	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Shipping *controllers.ShippingController
	Orders   *controllers.OrderController
}

// RegisterAPI mounts the public storefront routes and, behind the session
// token gate, the customer routes.
func RegisterAPI(r *router.Router, c Controllers, issuer *auth.Issuer) {
	r.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	r.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))

	r.Get("/", "products.index", ctx.Wrap(c.Catalog.Index))
	r.Get("/detail/{id}", "products.show", ctx.Wrap(c.Catalog.Show))
	r.Get("/categories", "categories.index", ctx.Wrap(c.Catalog.Categories))
	r.Get("/categories/{id}", "categories.show", ctx.Wrap(c.Catalog.Category))

	r.Get("/cost", "shipping.cost", ctx.Wrap(c.Shipping.Cost))
	r.Get("/province", "shipping.provinces", ctx.Wrap(c.Shipping.Provinces))
	r.Get("/city/{id}", "shipping.cities", ctx.Wrap(c.Shipping.Cities))

	protected := r.Group("", middleware.Authenticate(issuer))
	protected.Post("/generate-midtrans-token", "payment.token", ctx.Wrap(c.Orders.PaymentToken))
	protected.Get("/order", "orders.index", ctx.Wrap(c.Orders.Index))
	protected.Post("/buy/{id}", "orders.buy", ctx.Wrap(c.Orders.Buy))
}
