package models

// CartItem is one distinct product+color+size line in a cart. The line key
// is (Product.ID, SelectedColor, SelectedSize); adding the same key again
// merges quantities instead of appending a second line.
type CartItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selectedColor"`
	SelectedSize  string  `json:"selectedSize"`
	// Selected marks the line for the next cart-mode checkout.
	Selected bool `json:"selected"`
}

// Matches reports whether the line has the given composite key.
func (i CartItem) Matches(productID, color, size string) bool {
	return i.Product.ID == productID && i.SelectedColor == color && i.SelectedSize == size
}

// LineTotal is the price contribution of this line.
func (i CartItem) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
