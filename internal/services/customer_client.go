// internal/services/customer_client.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shamaim/admin-dashboard/internal/models"
)

// CustomerClient reads registered users and their orders. It never writes.
type CustomerClient struct {
	backend *backendClient
}

func NewCustomerClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *CustomerClient {
	return &CustomerClient{backend: newBackendClient("customers", baseURL, timeout, logger)}
}

// OrderFilter narrows an order listing. Zero fields match everything.
type OrderFilter struct {
	Status string
	UserID string
	Search string
}

func (f OrderFilter) matches(o models.Order) bool {
	if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
		return false
	}
	if f.UserID != "" && string(o.UserID) != f.UserID {
		return false
	}
	return o.MatchesSearch(f.Search)
}

// OrderSummary is an order with its display-ready shipment and payment
// details.
type OrderSummary struct {
	models.Order
	PaymentMode     string  `json:"paymentMode"`
	ShippingAddress string  `json:"shippingAddress"`
	ItemsSubtotal   float64 `json:"itemsSubtotal"`
}

func Summarize(o models.Order) OrderSummary {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.SellingPrice * float64(item.Quantity)
	}
	return OrderSummary{
		Order:           o,
		PaymentMode:     o.PaymentMode(),
		ShippingAddress: o.ShippingAddress(),
		ItemsSubtotal:   subtotal,
	}
}

func (c *CustomerClient) Users(ctx context.Context) ([]models.Customer, error) {
	var users []models.Customer
	if err := c.backend.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.Customer{}
	}
	return users, nil
}

// UserOrders returns the order history of one customer.
func (c *CustomerClient) UserOrders(ctx context.Context, userID string) ([]OrderSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}

	var orders []models.Order
	path := "/orders/own/" + url.PathEscape(userID)
	if err := c.backend.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		if o.UserID == "" {
			o.UserID = models.ExternalID(userID)
		}
		summaries = append(summaries, Summarize(o))
	}
	return summaries, nil
}

// Orders lists every order matching filter, in backend order.
func (c *CustomerClient) Orders(ctx context.Context, filter OrderFilter) ([]OrderSummary, error) {
	var orders []models.Order
	if err := c.backend.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		if filter.matches(o) {
			summaries = append(summaries, Summarize(o))
		}
	}
	return summaries, nil
}
