package checkout

// PaymentMethod is one of the options offered on the payment step. The order
// records Label.
type PaymentMethod struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var paymentMethods = []PaymentMethod{
	{ID: "upi", Label: "UPI", Description: "Pay using any UPI app"},
	{ID: "card", Label: "Credit/Debit Card", Description: "Visa, Mastercard, RuPay"},
	{ID: "netbanking", Label: "Net Banking", Description: "All major banks supported"},
	{ID: "cod", Label: "Cash on Delivery", Description: "Pay when you receive"},
}

func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

func lookupPayment(id string) (PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
