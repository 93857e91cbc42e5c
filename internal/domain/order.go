package domain

import "time"

type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	Items           []OrderItem `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	Shipping        int64       `json:"shipping"`
	Tax             int64       `json:"tax"`
	Total           int64       `json:"total"`
	Status          OrderStatus `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	ShippingAddress Address     `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Clone returns a copy with its own item slice.
func (o Order) Clone() Order {
	out := o
	out.Items = append([]OrderItem(nil), o.Items...)
	return out
}

// OrderItemsFromCart snapshots cart lines into order lines.
func OrderItemsFromCart(items []CartItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		})
	}
	return out
}
