// internal/tests/customer_test.go
package tests

import (
	"net/http"
	"net/http/httptest"

	"github.com/shamaim/admin-dashboard/internal/services"
)

func newCustomerBackend() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users":
			w.Write([]byte(`[{"id": "u1", "email": "rafi@example.com", "role": "user", "addresses": []},
				{"id": 7, "email": "mou@example.com", "role": "user", "addresses": []}]`))
		case "/orders/own/u1":
			w.Write([]byte(`[{"id": "o-1", "status": "Shipped", "totalAmount": 1598, "totalItems": 2,
				"items": [{"name": "Naruto Classic Tee", "selling_price": 799, "quantity": 2,
					"selectedAddress": {"street": "4 Road 7", "city": "Dhaka", "state": "Dhaka", "pinCode": "1207"}}],
				"paymentDetails": [{"payMode": "COD"}]}]`))
		case "/orders":
			w.Write([]byte(`[{"id": "o-1", "userId": "u1", "status": "Shipped", "totalAmount": 1598, "totalItems": 2,
				"items": [{"name": "Naruto Classic Tee", "selling_price": 799, "quantity": 2}], "paymentDetails": []},
				{"id": "o-2", "userId": 7, "status": "Pending", "totalAmount": 899, "totalItems": 1,
				"items": [{"name": "Drip Hoodie", "selling_price": 899, "quantity": 1}], "paymentDetails": []}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "User not found"}`))
		}
	}))
}

func (s *APITestSuite) TestListUsers() {
	w := s.authed(http.MethodGet, "/v1/users", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var users []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	s.decode(w, &users)
	s.Require().Len(users, 2)
	s.Equal("7", users[1].ID)
}

func (s *APITestSuite) TestUserOrdersCarryBreakdown() {
	w := s.authed(http.MethodGet, "/v1/users/u1/orders", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var orders []services.OrderSummary
	s.decode(w, &orders)
	s.Require().Len(orders, 1)
	s.Equal("COD", orders[0].PaymentMode)
	s.Equal("4 Road 7, Dhaka, Dhaka, 1207", orders[0].ShippingAddress)
	s.Equal(1598.0, orders[0].ItemsSubtotal)
	s.Equal("u1", string(orders[0].UserID))
}

func (s *APITestSuite) TestUnknownUserOrders() {
	w := s.authed(http.MethodGet, "/v1/users/ghost/orders", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestFilterOrders() {
	var orders []services.OrderSummary

	s.decode(s.authed(http.MethodGet, "/v1/orders?status=pending", nil), &orders)
	s.Require().Len(orders, 1)
	s.Equal("o-2", string(orders[0].ID))

	s.decode(s.authed(http.MethodGet, "/v1/orders?user_id=7", nil), &orders)
	s.Require().Len(orders, 1)

	s.decode(s.authed(http.MethodGet, "/v1/orders?search=naruto", nil), &orders)
	s.Require().Len(orders, 1)
	s.Equal("N/A", orders[0].PaymentMode)
}
