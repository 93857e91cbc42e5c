package domain

import "time"

// Address stores one entry of a user's address book.
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"isDefault"`
}

// User is the signed-in shopper of a visitor session.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []Address `json:"addresses"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers cannot mutate store state.
func (u User) Clone() User {
	out := u
	out.Addresses = append([]Address(nil), u.Addresses...)
	if out.Addresses == nil {
		out.Addresses = []Address{}
	}
	return out
}

// DefaultAddress returns the address flagged as default, if any.
func (u User) DefaultAddress() (Address, bool) {
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

// FindAddress looks up an address by id.
func (u User) FindAddress(id string) (Address, bool) {
	for _, a := range u.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}
