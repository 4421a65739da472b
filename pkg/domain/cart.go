package domain

// CartItem is one line of the server-side cart. The item id (not the
// product id) is what remove/update operations address.
type CartItem struct {
	ID        ID       `json:"id"`
	ProductID ID       `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"` // unit price captured at add time
	Product   *Product `json:"product,omitempty"`
}

// Name returns a display name for the line, preferring the embedded product.
func (i CartItem) Name() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return string(i.ProductID)
}

// LineTotal is unit price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the client view of the server-side cart. It is fetched fresh on
// each view refresh and never reconciled locally; the last fetch wins.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Subtotal sums the line totals.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// Count returns the total unit count across all lines.
func (c Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
