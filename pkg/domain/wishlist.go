package domain

// WishlistItem is one saved product. Some API versions return the bare
// product id as the item id, others embed the full product.
type WishlistItem struct {
	ID        ID       `json:"id"`
	ProductID ID       `json:"productId,omitempty"`
	Product   *Product `json:"product,omitempty"`
}

// TargetProductID returns the product this entry points at, whichever
// field the API chose to populate.
func (w WishlistItem) TargetProductID() ID {
	if w.ProductID != "" {
		return w.ProductID
	}
	if w.Product != nil && w.Product.ID != "" {
		return w.Product.ID
	}
	return w.ID
}
