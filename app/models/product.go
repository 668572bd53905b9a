package models

// Product is one catalogue entry. The whole catalogue is persisted as a
// single JSON snapshot under the "products" key.
type Product struct {
	ID            string   `json:"id"`
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	MinPrice      float64  `json:"minPrice"`
	MaxPrice      float64  `json:"maxPrice"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	InStock       bool     `json:"inStock"`
	StockQuantity int      `json:"stockQuantity"`
	Images        []string `json:"images"`
}

// ProductInput carries the fields an admin supplies when creating a product.
// SKU is optional; an empty SKU is auto-generated.
type ProductInput struct {
	SKU           string   `json:"sku"           validate:"nullable,regex=^[A-Z]{3}-[A-Z]{3}-[0-9]{3}$"`
	Name          string   `json:"name"          validate:"required,min=2,max=180"`
	Price         float64  `json:"price"         validate:"required,gt=0"`
	MinPrice      float64  `json:"minPrice"      validate:"required,gte=0"`
	MaxPrice      float64  `json:"maxPrice"      validate:"required,gt=0"`
	Description   string   `json:"description"`
	Category      string   `json:"category"      validate:"required"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	StockQuantity int      `json:"stockQuantity" validate:"gte=0"`
	Images        []string `json:"images"`
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	SKU           *string   `json:"sku"`
	Name          *string   `json:"name"`
	Price         *float64  `json:"price"`
	MinPrice      *float64  `json:"minPrice"`
	MaxPrice      *float64  `json:"maxPrice"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category"`
	Colors        *[]string `json:"colors"`
	Sizes         *[]string `json:"sizes"`
	StockQuantity *int      `json:"stockQuantity"`
	Images        *[]string `json:"images"`
}
