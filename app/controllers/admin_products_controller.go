package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/storage"
)

// AdminProductsController is the catalogue management surface. Every
// mutation lands in the audit log with the acting admin attached.
type AdminProductsController struct {
	catalog *services.Catalog
	audit   *services.Audit
}

func NewAdminProductsController(catalog *services.Catalog, audit *services.Audit) *AdminProductsController {
	return &AdminProductsController{catalog: catalog, audit: audit}
}

// Create adds a product. A missing SKU is generated from the persisted
// sequence.
func (pc *AdminProductsController) Create(c *ctx.Context) {
	var in models.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := pc.catalog.Add(in)
	if err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	pc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "product.created",
		Category:   models.AuditCategoryProduct,
		Details: models.AuditDetails{
			ItemID:      product.ID,
			ItemName:    product.Name,
			Description: fmt.Sprintf("created product %q (%s)", product.Name, product.SKU),
		},
	})
	c.Created(product)
}

// Update patches a product and records the field-level diff.
func (pc *AdminProductsController) Update(c *ctx.Context) {
	id := c.Param("id")
	before, ok := pc.catalog.Get(id)
	if !ok {
		c.NotFound("product not found")
		return
	}

	var patch models.ProductPatch
	if !c.BindJSON(&patch) {
		return
	}

	after, err := pc.catalog.Update(id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	pc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "product.updated",
		Category:   models.AuditCategoryProduct,
		Details: models.AuditDetails{
			ItemID:      after.ID,
			ItemName:    after.Name,
			Changes:     productChanges(before, after),
			Description: fmt.Sprintf("updated product %q", after.Name),
		},
	})
	c.Success(after)
}

// Delete removes a product from the catalogue. Existing carts and orders
// keep their own snapshots.
func (pc *AdminProductsController) Delete(c *ctx.Context) {
	id := c.Param("id")
	product, ok := pc.catalog.Get(id)
	if !ok {
		c.NotFound("product not found")
		return
	}

	if err := pc.catalog.Delete(id); err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	pc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "product.deleted",
		Category:   models.AuditCategoryProduct,
		Details: models.AuditDetails{
			ItemID:      product.ID,
			ItemName:    product.Name,
			Description: fmt.Sprintf("deleted product %q (%s)", product.Name, product.SKU),
		},
	})
	c.Success(map[string]string{"message": "product deleted"})
}

type stockInput struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// UpdateStock sets the absolute stock quantity.
func (pc *AdminProductsController) UpdateStock(c *ctx.Context) {
	var in stockInput
	if !c.BindJSON(&in) {
		return
	}

	id := c.Param("id")
	before, _ := pc.catalog.Get(id)
	product, err := pc.catalog.UpdateStock(id, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	pc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "stock.updated",
		Category:   models.AuditCategoryStock,
		Details: models.AuditDetails{
			ItemID:   product.ID,
			ItemName: product.Name,
			Changes: []models.FieldChange{{
				Field:    "stockQuantity",
				OldValue: before.StockQuantity,
				NewValue: product.StockQuantity,
			}},
			Description: fmt.Sprintf("set stock of %q to %d", product.Name, product.StockQuantity),
		},
	})
	c.Success(product)
}

// GenerateSKU hands the admin UI the next free SKU.
func (pc *AdminProductsController) GenerateSKU(c *ctx.Context) {
	c.Success(map[string]string{"sku": pc.catalog.GenerateSKU()})
}

// UploadImage stores a product image on the configured disk and appends
// its URL to the product's image list.
func (pc *AdminProductsController) UploadImage(c *ctx.Context) {
	id := c.Param("id")
	product, ok := pc.catalog.Get(id)
	if !ok {
		c.NotFound("product not found")
		return
	}

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	path := fmt.Sprintf("products/%s/%s", product.ID, name)
	if err := storage.PutStream(path, file); err != nil {
		c.Error(http.StatusInternalServerError, "store image: "+err.Error())
		return
	}

	images := append(append([]string{}, product.Images...), storage.URL(path))
	updated, err := pc.catalog.Update(id, models.ProductPatch{Images: &images})
	if err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	pc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "product.image_uploaded",
		Category:   models.AuditCategoryProduct,
		Details: models.AuditDetails{
			ItemID:      updated.ID,
			ItemName:    updated.Name,
			Description: fmt.Sprintf("uploaded image %q for %q", name, updated.Name),
		},
	})
	c.Success(updated)
}

// productChanges diffs two catalogue snapshots field by field for the
// audit trail.
func productChanges(before, after models.Product) []models.FieldChange {
	var changes []models.FieldChange
	record := func(field string, old, new interface{}) {
		if !reflect.DeepEqual(old, new) {
			changes = append(changes, models.FieldChange{Field: field, OldValue: old, NewValue: new})
		}
	}

	record("sku", before.SKU, after.SKU)
	record("name", before.Name, after.Name)
	record("price", before.Price, after.Price)
	record("minPrice", before.MinPrice, after.MinPrice)
	record("maxPrice", before.MaxPrice, after.MaxPrice)
	record("description", before.Description, after.Description)
	record("category", before.Category, after.Category)
	record("colors", strings.Join(before.Colors, ","), strings.Join(after.Colors, ","))
	record("sizes", strings.Join(before.Sizes, ","), strings.Join(after.Sizes, ","))
	record("stockQuantity", before.StockQuantity, after.StockQuantity)
	record("images", strings.Join(before.Images, ","), strings.Join(after.Images, ","))
	return changes
}
