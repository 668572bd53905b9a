package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
)

const (
	productsKey = "products"
	skuSeqKey   = "skuSequence"

	skuPrefix = "LLX"
)

// Catalog holds the product records and the SKU sequence. All reads return
// copies; mutations persist the full product snapshot before returning.
type Catalog struct {
	mu       sync.Mutex
	store    kvstore.Store
	products []models.Product
	skuSeq   int
}

// NewCatalog restores the catalogue from the store, falling back to the
// built-in seed products on first run.
func NewCatalog(store kvstore.Store) *Catalog {
	c := &Catalog{store: store}

	if !store.Get(productsKey, &c.products) {
		c.products = seedProducts()
		_ = store.Put(productsKey, c.products)
	}
	store.Get(skuSeqKey, &c.skuSeq)

	return c
}

// Products returns a copy of every product.
func (c *Catalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Add creates a product. An empty SKU is auto-generated; a supplied SKU must
// be unique. The price must sit inside the declared [MinPrice, MaxPrice]
// band or the mutation is skipped.
func (c *Catalog) Add(in models.ProductInput) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if in.Price < in.MinPrice || in.Price > in.MaxPrice {
		return models.Product{}, fmt.Errorf("add product: %w", ErrPriceOutOfBand)
	}

	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = c.nextSKU()
	} else if !c.skuUnique(sku, "") {
		return models.Product{}, fmt.Errorf("add product: %w", ErrDuplicateSKU)
	}

	p := models.Product{
		ID:            timeID(),
		SKU:           sku,
		Name:          in.Name,
		Price:         in.Price,
		MinPrice:      in.MinPrice,
		MaxPrice:      in.MaxPrice,
		Description:   in.Description,
		Category:      in.Category,
		Colors:        in.Colors,
		Sizes:         in.Sizes,
		StockQuantity: in.StockQuantity,
		InStock:       in.StockQuantity > 0,
		Images:        in.Images,
	}

	c.products = append(c.products, p)
	c.persist()
	return p, nil
}

// Update merges the supplied fields into the existing record. Price and SKU
// constraints are re-checked against the merged result.
func (c *Catalog) Update(id string, patch models.ProductPatch) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("update product %s: %w", id, ErrNotFound)
	}

	merged := c.products[idx]
	if patch.SKU != nil {
		merged.SKU = strings.TrimSpace(*patch.SKU)
	}
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.MinPrice != nil {
		merged.MinPrice = *patch.MinPrice
	}
	if patch.MaxPrice != nil {
		merged.MaxPrice = *patch.MaxPrice
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.Colors != nil {
		merged.Colors = *patch.Colors
	}
	if patch.Sizes != nil {
		merged.Sizes = *patch.Sizes
	}
	if patch.StockQuantity != nil {
		merged.StockQuantity = *patch.StockQuantity
		if merged.StockQuantity < 0 {
			merged.StockQuantity = 0
		}
		merged.InStock = merged.StockQuantity > 0
	}
	if patch.Images != nil {
		merged.Images = *patch.Images
	}

	if merged.Price < merged.MinPrice || merged.Price > merged.MaxPrice {
		return models.Product{}, fmt.Errorf("update product %s: %w", id, ErrPriceOutOfBand)
	}
	if !c.skuUnique(merged.SKU, id) {
		return models.Product{}, fmt.Errorf("update product %s: %w", id, ErrDuplicateSKU)
	}

	c.products[idx] = merged
	c.persist()
	return merged, nil
}

// Delete removes a product by identity. Carts and orders are untouched;
// they carry their own product snapshots.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete product %s: %w", id, ErrNotFound)
	}

	c.products = append(c.products[:idx], c.products[idx+1:]...)
	c.persist()
	return nil
}

// UpdateStock sets the absolute stock quantity, clamped at zero, and
// recomputes the in-stock flag.
func (c *Catalog) UpdateStock(id string, quantity int) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("update stock %s: %w", id, ErrNotFound)
	}

	if quantity < 0 {
		quantity = 0
	}
	c.products[idx].StockQuantity = quantity
	c.products[idx].InStock = quantity > 0

	c.persist()
	return c.products[idx], nil
}

// DecrementStock reduces stock by the ordered quantity, clamped at zero.
// Used by checkout after an order is placed.
func (c *Catalog) DecrementStock(id string, quantity int) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("decrement stock %s: %w", id, ErrNotFound)
	}

	remaining := c.products[idx].StockQuantity - quantity
	if remaining < 0 {
		remaining = 0
	}
	c.products[idx].StockQuantity = remaining
	c.products[idx].InStock = remaining > 0

	c.persist()
	return c.products[idx], nil
}

// GenerateSKU returns the next free SKU and advances the persisted sequence.
func (c *Catalog) GenerateSKU() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextSKU()
}

// IsSKUUnique reports whether no other product (excluding excludeID) holds
// the SKU. The comparison is a case-sensitive exact match.
func (c *Catalog) IsSKUUnique(sku, excludeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skuUnique(sku, excludeID)
}

// nextSKU encodes the persisted monotonic sequence into the LLX-AAA-999
// pattern and advances past any manually-entered collision, so generated
// SKUs are unique by construction. Callers must hold c.mu.
func (c *Catalog) nextSKU() string {
	for {
		sku := formatSKU(c.skuSeq)
		c.skuSeq++
		_ = c.store.Put(skuSeqKey, c.skuSeq)
		if c.skuUnique(sku, "") {
			return sku
		}
	}
}

// formatSKU maps a sequence number onto LLX-AAA-999: the low three decimal
// digits become the numeric tail, the rest is base-26 encoded into three
// uppercase letters.
func formatSKU(seq int) string {
	digits := seq % 1000
	letters := seq / 1000

	buf := [3]byte{'A', 'A', 'A'}
	for i := 2; i >= 0 && letters > 0; i-- {
		buf[i] = byte('A' + letters%26)
		letters /= 26
	}

	return fmt.Sprintf("%s-%s-%03d", skuPrefix, buf[:], digits)
}

func (c *Catalog) skuUnique(sku, excludeID string) bool {
	for _, p := range c.products {
		if p.SKU == sku && p.ID != excludeID {
			return false
		}
	}
	return true
}

func (c *Catalog) indexOf(id string) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) persist() {
	_ = c.store.Put(productsKey, c.products)
}

// seedProducts is the catalogue shipped on first run.
func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:            "1",
			SKU:           "LLX-DRS-001",
			Name:          "Midnight Elegance Dress",
			Price:         299,
			MinPrice:      250,
			MaxPrice:      400,
			Description:   "A stunning black dress perfect for evening occasions",
			Category:      "Dresses",
			Colors:        []string{"black", "navy", "burgundy"},
			Sizes:         []string{"XS", "S", "M", "L", "XL"},
			InStock:       true,
			StockQuantity: 25,
		},
		{
			ID:            "2",
			SKU:           "LLX-BLZ-002",
			Name:          "Urban Chic Blazer",
			Price:         199,
			MinPrice:      150,
			MaxPrice:      300,
			Description:   "Modern blazer for the contemporary professional",
			Category:      "Blazers",
			Colors:        []string{"black", "charcoal", "navy"},
			Sizes:         []string{"S", "M", "L", "XL"},
			InStock:       true,
			StockQuantity: 15,
		},
		{
			ID:            "3",
			SKU:           "LLX-ACC-003",
			Name:          "Luxury Silk Scarf",
			Price:         89,
			MinPrice:      60,
			MaxPrice:      120,
			Description:   "Premium silk scarf with elegant patterns",
			Category:      "Accessories",
			Colors:        []string{"black", "gold", "silver"},
			Sizes:         []string{"One Size"},
			InStock:       true,
			StockQuantity: 50,
		},
	}
}
