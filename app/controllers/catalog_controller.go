package controllers

import (
	"strings"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
)

// CatalogController serves the public product surface.
type CatalogController struct {
	catalog *services.Catalog
}

func NewCatalogController(catalog *services.Catalog) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// List returns the catalogue, optionally filtered by ?category= and a
// ?q= substring match on name and description.
func (cc *CatalogController) List(c *ctx.Context) {
	products := cc.catalog.Products()

	category := c.Query("category")
	q := strings.ToLower(c.Query("q"))
	if category == "" && q == "" {
		c.Success(products)
		return
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		filtered = append(filtered, p)
	}
	c.Success(filtered)
}

// Get returns one product by ID.
func (cc *CatalogController) Get(c *ctx.Context) {
	product, ok := cc.catalog.Get(c.Param("id"))
	if !ok {
		c.NotFound("product not found")
		return
	}
	c.Success(product)
}
