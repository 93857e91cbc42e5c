// Package pricing holds the storefront's money rules: shipping threshold,
// GST, coupon discounts and the derived cart and checkout totals. All
// amounts are whole rupees.
package pricing

import (
	"strings"

	"balaji-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// FreeShippingThreshold is the subtotal that must be exceeded for free delivery.
	FreeShippingThreshold int64 = 999
	// ShippingFee is charged when the threshold is not exceeded.
	ShippingFee int64 = 99
	// TaxPercent is the GST rate applied at checkout.
	TaxPercent int64 = 18
)

// Coupon is a percentage discount applied on the cart page.
type Coupon struct {
	Code    string `json:"code"`
	Percent int64  `json:"percent"`
}

var coupons = map[string]Coupon{
	"DIWALI20": {Code: "DIWALI20", Percent: 20},
	"SAVE10":   {Code: "SAVE10", Percent: 10},
}

// LookupCoupon resolves a code case-insensitively.
func LookupCoupon(code string) (Coupon, bool) {
	c, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CartQuote is the summary shown on the cart page.
type CartQuote struct {
	Subtotal              int64 `json:"subtotal"`
	Discount              int64 `json:"discount"`
	Shipping              int64 `json:"shipping"`
	Total                 int64 `json:"total"`
	FreeShippingRemaining int64 `json:"freeShippingRemaining"`
}

// CheckoutQuote is the summary shown during checkout and stored on the order.
type CheckoutQuote struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

func Subtotal(items []domain.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

func Shipping(subtotal int64) int64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

func Tax(subtotal int64) int64 {
	return percentOf(subtotal, TaxPercent)
}

// Discount returns the coupon discount on subtotal; nil means no coupon.
func Discount(subtotal int64, coupon *Coupon) int64 {
	if coupon == nil {
		return 0
	}
	return percentOf(subtotal, coupon.Percent)
}

func QuoteCart(items []domain.CartItem, coupon *Coupon) CartQuote {
	subtotal := Subtotal(items)
	q := CartQuote{
		Subtotal: subtotal,
		Discount: Discount(subtotal, coupon),
		Shipping: Shipping(subtotal),
	}
	q.Total = q.Subtotal - q.Discount + q.Shipping
	if subtotal < FreeShippingThreshold {
		q.FreeShippingRemaining = FreeShippingThreshold - subtotal
	}
	return q
}

func QuoteCheckout(items []domain.CartItem) CheckoutQuote {
	subtotal := Subtotal(items)
	q := CheckoutQuote{
		Subtotal: subtotal,
		Shipping: Shipping(subtotal),
		Tax:      Tax(subtotal),
	}
	q.Total = q.Subtotal + q.Shipping + q.Tax
	return q
}

// ProductDiscountPercent is the "-N%" badge for a product with an original price.
func ProductDiscountPercent(p domain.Product) int64 {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 || *p.OriginalPrice <= p.Price {
		return 0
	}
	orig := decimal.NewFromInt(*p.OriginalPrice)
	off := orig.Sub(decimal.NewFromInt(p.Price)).Div(orig).Mul(decimal.NewFromInt(100))
	return off.Round(0).IntPart()
}

// percentOf rounds half away from zero.
func percentOf(amount, percent int64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
