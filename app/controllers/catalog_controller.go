package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Index handles GET /?page.size=&page.number=.
func (h *CatalogController) Index(c *ctx.Context) {
	page := orm.ParsePage(c.Query("page.size"), c.Query("page.number"))

	products, pagination, err := h.catalog.Products(c.Context(), page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated(products, pagination)
}

// Show handles GET /detail/{id}.
func (h *CatalogController) Show(c *ctx.Context) {
	product, err := h.catalog.Product(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(product)
}

// Categories handles GET /categories.
func (h *CatalogController) Categories(c *ctx.Context) {
	categories, err := h.catalog.Categories(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(categories)
}

// Category handles GET /categories/{id}.
func (h *CatalogController) Category(c *ctx.Context) {
	category, err := h.catalog.Category(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(category)
}
