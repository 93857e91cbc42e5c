package snapshot

import (
	"errors"
	"testing"
	"time"

	"balaji-storefront/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeCart_RoundTripKeepsOrder(t *testing.T) {
	orig := int64(799)
	items := []domain.CartItem{
		{ID: 3, Name: "Ceiling Fan", Price: 2499, Quantity: 1, Category: "fans"},
		{ID: 1, Name: "LED Bulb", Price: 599, OriginalPrice: &orig, Quantity: 2, Category: "lighting"},
	}
	payload, err := EncodeCart(items)
	if err != nil {
		t.Fatalf("EncodeCart: %v", err)
	}
	got, err := DecodeCart(payload)
	if err != nil {
		t.Fatalf("DecodeCart: %v", err)
	}
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("cart mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeCart_NilIsEmptyArray(t *testing.T) {
	payload, err := EncodeCart(nil)
	if err != nil {
		t.Fatalf("EncodeCart: %v", err)
	}
	if string(payload) != `{"version":1,"data":[]}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestDecodeCart_Corrupt(t *testing.T) {
	cases := map[string]string{
		"not json":        `{{`,
		"wrong version":   `{"version":2,"data":[]}`,
		"missing data":    `{"version":1}`,
		"zero quantity":   `{"version":1,"data":[{"id":1,"name":"x","price":10,"quantity":0}]}`,
		"string price":    `{"version":1,"data":[{"id":1,"name":"x","price":"10","quantity":1}]}`,
		"duplicate lines": `{"version":1,"data":[{"id":1,"name":"x","price":10,"quantity":1},{"id":1,"name":"x","price":10,"quantity":2}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeCart([]byte(payload)); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestDecodeUser(t *testing.T) {
	u := domain.User{
		ID:    "1",
		Name:  "Asha",
		Email: "asha@example.com",
		Addresses: []domain.Address{
			{ID: "a1", Name: "Home", Phone: "+91 98765 43210", Street: "1 Road", City: "Pune", State: "Maharashtra", Pincode: "411001", IsDefault: true},
		},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	payload, err := EncodeUser(u)
	if err != nil {
		t.Fatalf("EncodeUser: %v", err)
	}
	got, err := DecodeUser(payload)
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if diff := cmp.Diff(u, got); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}

	twoDefaults := `{"version":1,"data":{"id":"1","name":"A","email":"a@b.c","addresses":[` +
		`{"id":"a","name":"H","phone":"1","street":"s","city":"c","state":"s","pincode":"1","isDefault":true},` +
		`{"id":"b","name":"W","phone":"1","street":"s","city":"c","state":"s","pincode":"1","isDefault":true}]}}`
	if _, err := DecodeUser([]byte(twoDefaults)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for two defaults, got %v", err)
	}
}

func TestDecodeOrders_UnknownStatus(t *testing.T) {
	payload := `{"version":1,"data":[{"id":"o","orderNumber":"BE-1","items":[],"subtotal":0,"shipping":0,"tax":0,"total":0,` +
		`"status":"Lost","paymentMethod":"UPI","shippingAddress":{"id":"a","name":"H","phone":"1","street":"s","city":"c","state":"s","pincode":"1","isDefault":false}}]}`
	if _, err := DecodeOrders([]byte(payload)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}
