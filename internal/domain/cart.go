package domain

// CartItem is one line of a visitor's cart. Price is a snapshot taken when
// the product was first added.
type CartItem struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// CartItemFromProduct builds a new line for p with the given quantity.
func CartItemFromProduct(p Product, quantity int) CartItem {
	item := CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Quantity: quantity,
	}
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		item.OriginalPrice = &orig
	}
	return item
}
