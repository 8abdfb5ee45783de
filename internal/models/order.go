// internal/models/order.go
package models

import (
	"fmt"
	"strings"
)

type OrderItem struct {
	Name            string   `json:"name"`
	Thumbnail       string   `json:"thumbnail"`
	SellingPrice    float64  `json:"selling_price"`
	Quantity        int      `json:"quantity"`
	SelectedAddress *Address `json:"selectedAddress,omitempty"`
}

type PaymentDetail struct {
	PayMode string `json:"payMode"`
}

type Order struct {
	ID             ExternalID      `json:"id"`
	UserID         ExternalID      `json:"userId,omitempty"`
	Status         string          `json:"status"`
	TotalAmount    float64         `json:"totalAmount"`
	TotalItems     int             `json:"totalItems"`
	Items          []OrderItem     `json:"items"`
	PaymentDetails []PaymentDetail `json:"paymentDetails"`
}

// PaymentMode reports the first payment detail's mode, or "N/A".
func (o Order) PaymentMode() string {
	if len(o.PaymentDetails) > 0 && o.PaymentDetails[0].PayMode != "" {
		return o.PaymentDetails[0].PayMode
	}
	return "N/A"
}

// ShippingAddress formats the first item's delivery address, or "N/A".
func (o Order) ShippingAddress() string {
	if len(o.Items) == 0 || o.Items[0].SelectedAddress == nil {
		return "N/A"
	}
	a := o.Items[0].SelectedAddress
	return fmt.Sprintf("%s, %s, %s, %s", a.Street, a.City, a.State, a.PinCode)
}

// MatchesSearch reports whether the order id or any item name contains term,
// case-insensitively.
func (o Order) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(string(o.ID)), term) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			return true
		}
	}
	return false
}
