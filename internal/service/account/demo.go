package account

import (
	"time"

	"balaji-storefront/internal/domain"
)

const (
	demoUserID = "1"
	demoPhone  = "+91 98765 43210"
)

func demoAddress() domain.Address {
	return domain.Address{
		ID:        "1",
		Name:      "Home",
		Phone:     demoPhone,
		Street:    "123 Electric Avenue",
		City:      "Mumbai",
		State:     "Maharashtra",
		Pincode:   "400001",
		IsDefault: true,
	}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// demoOrders is the canned order history shown after login. Each call returns
// fresh values.
func demoOrders() []domain.Order {
	office := domain.Address{
		ID:      "2",
		Name:    "Office",
		Phone:   "+91 98765 43211",
		Street:  "456 Industrial Area",
		City:    "Mumbai",
		State:   "Maharashtra",
		Pincode: "400002",
	}
	return []domain.Order{
		{
			ID:          "1",
			OrderNumber: "BE-2024-001234",
			Items: []domain.OrderItem{
				{ID: 1, Name: "Philips 12W LED Bulb Pack of 4", Price: 599, Quantity: 2, Image: "https://images.unsplash.com/photo-1565814329452-e1efa11c5b89?w=100"},
				{ID: 2, Name: "Havells 1200mm Ceiling Fan", Price: 2499, Quantity: 1, Image: "https://images.unsplash.com/photo-1635048424329-a9bfb146d7aa?w=100"},
			},
			Subtotal:        3697,
			Shipping:        0,
			Tax:             665,
			Total:           4362,
			Status:          domain.OrderDelivered,
			PaymentMethod:   "UPI",
			ShippingAddress: demoAddress(),
			CreatedAt:       mustTime("2024-11-15T10:30:00Z"),
			UpdatedAt:       mustTime("2024-11-18T14:20:00Z"),
		},
		{
			ID:          "2",
			OrderNumber: "BE-2024-001235",
			Items: []domain.OrderItem{
				{ID: 5, Name: "Crompton Digital Multimeter", Price: 1599, Quantity: 1, Image: "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=100"},
			},
			Subtotal:        1599,
			Shipping:        0,
			Tax:             288,
			Total:           1887,
			Status:          domain.OrderShipped,
			PaymentMethod:   "Credit/Debit Card",
			ShippingAddress: demoAddress(),
			CreatedAt:       mustTime("2024-12-01T15:45:00Z"),
			UpdatedAt:       mustTime("2024-12-03T09:15:00Z"),
		},
		{
			ID:          "3",
			OrderNumber: "BE-2024-001236",
			Items: []domain.OrderItem{
				{ID: 4, Name: "Finolex FR Cable 2.5 sqmm (90m)", Price: 4299, Quantity: 1, Image: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=100"},
				{ID: 3, Name: "Anchor Roma 10A Switch Set", Price: 849, Quantity: 3, Image: "https://images.unsplash.com/photo-1558089687-f282ffcbc126?w=100"},
			},
			Subtotal:        6846,
			Shipping:        0,
			Tax:             1232,
			Total:           8078,
			Status:          domain.OrderProcessing,
			PaymentMethod:   "Cash on Delivery",
			ShippingAddress: office,
			CreatedAt:       mustTime("2024-12-05T11:20:00Z"),
			UpdatedAt:       mustTime("2024-12-05T11:20:00Z"),
		},
	}
}
