// internal/tests/catalog_test.go
package tests

import (
	"net/http"

	"github.com/shamaim/admin-dashboard/internal/models"
)

func (s *APITestSuite) TestListProducts() {
	w := s.authed(http.MethodGet, "/v1/products", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var products []models.ProductRecord
	env := s.decode(w, &products)
	s.Len(products, 2)
	s.Equal("2", w.Header().Get("X-Total-Count"))
	s.NotContains(env.Meta, "notice")
}

func (s *APITestSuite) TestListProductsFiltersAndPages() {
	var products []models.ProductRecord

	s.decode(s.authed(http.MethodGet, "/v1/products?search=hoodie", nil), &products)
	s.Require().Len(products, 1)
	s.Equal(int64(2), products[0].ProductID())

	s.decode(s.authed(http.MethodGet, "/v1/products?category=TShirts", nil), &products)
	s.Require().Len(products, 1)
	s.Equal(int64(1), products[0].ProductID())

	w := s.authed(http.MethodGet, "/v1/products?page=2&limit=1", nil)
	s.decode(w, &products)
	s.Require().Len(products, 1)
	s.Equal(int64(2), products[0].ProductID())
	s.Equal("2", w.Header().Get("X-Total-Pages"))
}

func (s *APITestSuite) TestListProductsPastTheEnd() {
	w := s.authed(http.MethodGet, "/v1/products?page=922337203685477580", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var products []models.ProductRecord
	s.decode(w, &products)
	s.Empty(products)
	s.Equal("2", w.Header().Get("X-Total-Count"))
}

func (s *APITestSuite) TestListProductsServesStaleCopy() {
	s.Require().Equal(http.StatusOK, s.authed(http.MethodGet, "/v1/products", nil).Code)
	s.catalog.failLists(errBackendDown)

	w := s.authed(http.MethodGet, "/v1/products", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var products []models.ProductRecord
	env := s.decode(w, &products)
	s.Len(products, 2)
	s.Equal("Could not refresh products; showing the last loaded list", env.Meta["notice"])
}

func (s *APITestSuite) TestListProductsFailsWithoutCopy() {
	s.catalog.failLists(errBackendDown)

	w := s.authed(http.MethodGet, "/v1/products", nil)
	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal("Failed to load products", s.decode(w, nil).Error.Message)
}

func (s *APITestSuite) TestCreateFailsWhenIDCannotBeAssigned() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)
	s.Require().Equal(http.StatusOK, s.authed(http.MethodPatch, "/v1/products/form", completeFields()).Code)
	s.Require().Equal(http.StatusOK, s.multipart(http.MethodPut, "/v1/products/form/thumbnail", "file", upload{"cover.png", "image/png", pngBytes}).Code)
	s.Require().Equal(http.StatusOK, s.multipart(http.MethodPost, "/v1/products/form/images", "files", upload{"front.png", "image/png", pngBytes}).Code)

	s.catalog.failLists(errBackendDown)
	w := s.authed(http.MethodPost, "/v1/products/form/submit", nil)
	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal("Failed to save product. Please try again.", s.decode(w, nil).Error.Message)

	var form formView
	s.decode(s.authed(http.MethodGet, "/v1/products/form", nil), &form)
	s.Equal("failed", form.State)
	s.Equal("creating", form.Mode.Kind)
	s.Equal("Itachi Drop Tee", form.Draft.Title)
	s.NotEmpty(form.LastError)
}

func (s *APITestSuite) TestGetAndDeleteProduct() {
	var product models.ProductRecord
	w := s.authed(http.MethodGet, "/v1/products/2", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &product)
	s.Equal("Drip Hoodie", product.Title)

	w = s.authed(http.MethodDelete, "/v1/products/2", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var data struct {
		Message string `json:"message"`
	}
	s.decode(w, &data)
	s.Equal("Product deleted successfully", data.Message)

	s.Equal(http.StatusNotFound, s.authed(http.MethodGet, "/v1/products/2", nil).Code)
	s.Equal(http.StatusNotFound, s.authed(http.MethodDelete, "/v1/products/2", nil).Code)
	s.Equal(http.StatusBadRequest, s.authed(http.MethodGet, "/v1/products/abc", nil).Code)
}

func (s *APITestSuite) TestVocabulary() {
	var vocab struct {
		Categories []models.Category `json:"categories"`
		Genres     []string          `json:"genres"`
		Sizes      []string          `json:"sizes"`
		Genders    []string          `json:"genders"`
	}
	w := s.authed(http.MethodGet, "/v1/catalog/vocabulary", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &vocab)

	s.Len(vocab.Categories, 3)
	s.Equal([]string{"M", "L", "XL"}, vocab.Sizes)
	s.Equal([]string{"Male", "Female"}, vocab.Genders)
	s.Contains(vocab.Genres, "Bangla O Bangali")
}

func (s *APITestSuite) TestAuditWithoutDatabase() {
	w := s.authed(http.MethodGet, "/v1/audit", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var logs []models.AuditLog
	s.decode(w, &logs)
	s.Empty(logs)
}
