package domain

// Product is a catalog entry.
type Product struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount,omitempty"` // percentage off, 0 when none
	Image       string   `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	CategoryID  ID       `json:"categoryId,omitempty"`
	Stock       int      `json:"stock,omitempty"`
}

// ImageURL returns the primary image, preferring the single image field
// over the first entry of the images list.
func (p Product) ImageURL() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// FinalPrice returns the price after applying the discount percentage.
func (p Product) FinalPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}
