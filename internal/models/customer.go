// internal/models/customer.go
package models

import "time"

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	PinCode string `json:"pinCode"`
}

// Customer is a registered storefront user as returned by the customer API.
type Customer struct {
	ID        ExternalID `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Addresses []Address  `json:"addresses"`
}
