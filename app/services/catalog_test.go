package services

import (
	"regexp"
	"testing"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skuPattern = regexp.MustCompile(`^LLX-[A-Z]{3}-[0-9]{3}$`)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	store := kvstore.NewMemory()
	// Start from an empty catalogue rather than the seed set.
	require.NoError(t, store.Put(productsKey, []models.Product{}))
	return NewCatalog(store)
}

func dressInput() models.ProductInput {
	return models.ProductInput{
		Name:          "Midnight Elegance Dress",
		Price:         299,
		MinPrice:      250,
		MaxPrice:      400,
		Category:      "Dresses",
		Colors:        []string{"black"},
		Sizes:         []string{"M"},
		StockQuantity: 25,
	}
}

func TestGeneratedSKUMatchesPatternAndIsUnique(t *testing.T) {
	c := newTestCatalog(t)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		p, err := c.Add(dressInput())
		require.NoError(t, err)

		assert.Regexp(t, skuPattern, p.SKU)
		assert.False(t, seen[p.SKU], "SKU %s generated twice", p.SKU)
		seen[p.SKU] = true
	}
}

func TestGenerateSKUSkipsManualCollisions(t *testing.T) {
	c := newTestCatalog(t)

	in := dressInput()
	in.SKU = formatSKU(0) // occupy the first sequence slot by hand
	_, err := c.Add(in)
	require.NoError(t, err)

	sku := c.GenerateSKU()
	assert.NotEqual(t, in.SKU, sku)
	assert.Regexp(t, skuPattern, sku)
}

func TestIsSKUUniqueLifecycle(t *testing.T) {
	c := newTestCatalog(t)

	in := dressInput()
	in.SKU = "LLX-DRS-001"
	p, err := c.Add(in)
	require.NoError(t, err)

	assert.False(t, c.IsSKUUnique("LLX-DRS-001", ""))
	assert.True(t, c.IsSKUUnique("LLX-DRS-001", p.ID), "owner is excluded")

	require.NoError(t, c.Delete(p.ID))
	assert.True(t, c.IsSKUUnique("LLX-DRS-001", ""))
}

func TestAddRejectsDuplicateSKU(t *testing.T) {
	c := newTestCatalog(t)

	in := dressInput()
	in.SKU = "LLX-DRS-001"
	_, err := c.Add(in)
	require.NoError(t, err)

	_, err = c.Add(in)
	assert.ErrorIs(t, err, ErrDuplicateSKU)
	assert.Len(t, c.Products(), 1, "mutation must be skipped")
}

func TestAddRejectsPriceOutsideBand(t *testing.T) {
	c := newTestCatalog(t)

	in := dressInput()
	in.Price = 500 // above MaxPrice 400

	_, err := c.Add(in)
	assert.ErrorIs(t, err, ErrPriceOutOfBand)
	assert.Empty(t, c.Products())
}

func TestUpdateMergesPartialFields(t *testing.T) {
	c := newTestCatalog(t)

	p, err := c.Add(dressInput())
	require.NoError(t, err)

	newPrice := 260.0
	updated, err := c.Update(p.ID, models.ProductPatch{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 260.0, updated.Price)
	assert.Equal(t, p.Name, updated.Name, "untouched fields survive")
	assert.Equal(t, p.SKU, updated.SKU)
}

func TestUpdateStockClampsAtZero(t *testing.T) {
	c := newTestCatalog(t)

	p, err := c.Add(dressInput())
	require.NoError(t, err)

	updated, err := c.UpdateStock(p.ID, -5)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.StockQuantity)
	assert.False(t, updated.InStock)
}

func TestUpdateStockRecomputesInStock(t *testing.T) {
	c := newTestCatalog(t)

	in := dressInput()
	in.StockQuantity = 0
	p, err := c.Add(in)
	require.NoError(t, err)
	assert.False(t, p.InStock)

	updated, err := c.UpdateStock(p.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.StockQuantity)
	assert.True(t, updated.InStock)
}

func TestDeleteUnknownProduct(t *testing.T) {
	c := newTestCatalog(t)
	assert.ErrorIs(t, c.Delete("missing"), ErrNotFound)
}

func TestCatalogPersistsAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Put(productsKey, []models.Product{}))

	c := NewCatalog(store)
	p, err := c.Add(dressInput())
	require.NoError(t, err)

	reloaded := NewCatalog(store)
	got, ok := reloaded.Get(p.ID)
	assert.True(t, ok)
	assert.Equal(t, p.SKU, got.SKU)
}

func TestCatalogSeedsOnFirstRun(t *testing.T) {
	c := NewCatalog(kvstore.NewMemory())
	assert.Len(t, c.Products(), 3)
}
