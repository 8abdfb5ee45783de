// internal/tests/product_form_test.go
package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/shamaim/admin-dashboard/internal/models"
)

type formView struct {
	Mode struct {
		Kind      string `json:"kind"`
		ProductID int64  `json:"product_id"`
	} `json:"mode"`
	State string `json:"state"`
	Draft struct {
		Title       string                   `json:"title"`
		Subcategory string                   `json:"subcategory"`
		OfferPrice  string                   `json:"offerPrice"`
		Thumbnail   map[string]interface{}   `json:"thumbnail"`
		Images      []map[string]interface{} `json:"images"`
	} `json:"draft"`
	LastError     string   `json:"last_error"`
	Subcategories []string `json:"subcategories"`
}

type formResponse struct {
	Message string   `json:"message"`
	Form    formView `json:"form"`
}

type submitResponse struct {
	Message  string               `json:"message"`
	Product  models.ProductRecord `json:"product"`
	Uploaded []string             `json:"uploaded"`
}

func completeFields() map[string]interface{} {
	return map[string]interface{}{
		"title":              "Itachi Drop Tee",
		"style":              "Oversized",
		"code":               "SH-301",
		"color":              "Black",
		"gsm":                "220",
		"highlight":          "New drop",
		"aboutDesign":        "Back print",
		"material":           "Cotton",
		"sleeve":             "Half",
		"fit":                "Relaxed",
		"neckType":           "Round",
		"pattern":            "Printed",
		"mrp":                1299,
		"discountPercentage": 20,
		"gender":             "Male",
		"category":           "TShirts",
		"subcategory":        "Drop Shoulder",
		"genre":              []string{"Anime"},
		"size":               []string{"M", "XL"},
		"stock":              map[string]int{"M": 10, "XL": 2},
	}
}

func (s *APITestSuite) TestCreateProductEndToEnd() {
	w := s.authed(http.MethodPost, "/v1/products/form", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.authed(http.MethodPatch, "/v1/products/form", completeFields())
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated formResponse
	s.decode(w, &updated)
	s.Equal("Drop Shoulder", updated.Form.Draft.Subcategory)
	s.Equal("1039.20", updated.Form.Draft.OfferPrice)

	w = s.multipart(http.MethodPut, "/v1/products/form/thumbnail", "file", upload{"cover.png", "image/png", pngBytes})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.multipart(http.MethodPost, "/v1/products/form/images", "files",
		upload{"front.png", "image/png", pngBytes},
		upload{"back.png", "image/png", pngBytes},
	)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &updated)
	s.Require().Len(updated.Form.Draft.Images, 2)
	s.Equal(true, updated.Form.Draft.Images[0]["pending"])

	w = s.authed(http.MethodPost, "/v1/products/form/submit", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var result submitResponse
	s.decode(w, &result)
	s.Equal("Product added successfully", result.Message)
	s.Equal(int64(3), result.Product.ProductID())
	s.Require().Len(result.Uploaded, 3)
	s.Require().Len(result.Product.Images, 2)
	s.True(strings.HasSuffix(result.Product.Images[0], "-front.png"))
	s.True(strings.HasSuffix(result.Product.Images[1], "-back.png"))
	s.True(strings.HasPrefix(result.Product.Thumbnail, "http://localhost:8080/uploads/thumbnails/"))
	s.Equal(map[string]int{"M": 10, "XL": 2}, result.Product.Stock)

	stored, err := s.catalog.Get(context.Background(), 3)
	s.Require().NoError(err)
	s.Equal("Itachi Drop Tee", stored.Title)
	s.Equal(1299.0, stored.Price)
	s.Equal(models.ProductCountryOfOrigin, stored.CountryOfOrigin)

	key := strings.TrimPrefix(result.Product.Images[0], "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(s.uploadsDir, filepath.FromSlash(key)))
	s.Require().NoError(err)
	s.Equal(pngBytes, data)

	var form formView
	s.decode(s.authed(http.MethodGet, "/v1/products/form", nil), &form)
	s.Equal("browsing", form.Mode.Kind)
	s.Equal("success", form.State)
}

func (s *APITestSuite) TestSubmitReportsMissingFields() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)
	s.Require().Equal(http.StatusOK, s.authed(http.MethodPatch, "/v1/products/form", map[string]interface{}{"title": "Only a title"}).Code)

	w := s.authed(http.MethodPost, "/v1/products/form/submit", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	env := s.decode(w, nil)
	s.Equal("VALIDATION_ERROR", env.Error.Code)
	s.True(strings.HasPrefix(env.Error.Message, "Please fill in all required fields: style, code, mrp"))

	var details struct {
		MissingFields []string `json:"missing_fields"`
	}
	s.Require().NoError(json.Unmarshal(env.Error.Details, &details))
	s.NotContains(details.MissingFields, "title")
	s.Contains(details.MissingFields, "thumbnail")
	s.Contains(details.MissingFields, "images")

	// The draft survives a rejected submission.
	var form formView
	s.decode(s.authed(http.MethodGet, "/v1/products/form", nil), &form)
	s.Equal("creating", form.Mode.Kind)
	s.Equal("Only a title", form.Draft.Title)
}

func (s *APITestSuite) TestSubmitWithoutSessionConflicts() {
	w := s.authed(http.MethodPost, "/v1/products/form/submit", nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Open the add or edit form first", s.decode(w, nil).Error.Message)

	w = s.authed(http.MethodPatch, "/v1/products/form", map[string]interface{}{"title": "x"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *APITestSuite) TestUpdateRejectsUnknownCatalogValues() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)

	w := s.authed(http.MethodPatch, "/v1/products/form", map[string]interface{}{"category": "Jackets"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", s.decode(w, nil).Error.Code)

	w = s.authed(http.MethodPatch, "/v1/products/form", map[string]interface{}{"gender": "men"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestCategoryChangeListsSubcategories() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)

	var resp formResponse
	s.decode(s.authed(http.MethodPatch, "/v1/products/form", map[string]interface{}{"category": "TShirts", "subcategory": "Polo Tees"}), &resp)
	s.Equal([]string{"Classic Fit", "Drop Shoulder", "Polo Tees"}, resp.Form.Subcategories)

	s.decode(s.authed(http.MethodPatch, "/v1/products/form", map[string]interface{}{"category": "Hoodies"}), &resp)
	s.Equal("", resp.Form.Draft.Subcategory)
	s.Equal([]string{"Classic Fit", "Drop Shoulder"}, resp.Form.Subcategories)
}

func (s *APITestSuite) TestEditProductKeepsExistingAssets() {
	w := s.authed(http.MethodPost, "/v1/products/form/edit/1", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp formResponse
	s.decode(w, &resp)
	s.Equal("editing", resp.Form.Mode.Kind)
	s.Equal(int64(1), resp.Form.Mode.ProductID)
	s.Equal("Naruto Classic Tee", resp.Form.Draft.Title)
	s.Equal("https://cdn.example.com/thumbnails/t.png", resp.Form.Draft.Thumbnail["url"])

	s.Require().Equal(http.StatusOK, s.authed(http.MethodPatch, "/v1/products/form", map[string]interface{}{"title": "Naruto Classic Tee v2"}).Code)

	w = s.authed(http.MethodPost, "/v1/products/form/submit", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var result submitResponse
	s.decode(w, &result)
	s.Equal("Product updated successfully", result.Message)
	s.Empty(result.Uploaded)

	sent := s.catalog.updated[1]
	s.Nil(sent.ID)
	s.Equal("Naruto Classic Tee v2", sent.Title)
	s.Equal("https://cdn.example.com/thumbnails/t.png", sent.Thumbnail)
	s.Equal([]string{"https://cdn.example.com/product-images/a.png"}, sent.Images)
}

func (s *APITestSuite) TestEditUnknownProduct() {
	w := s.authed(http.MethodPost, "/v1/products/form/edit/99", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Product not found", s.decode(w, nil).Error.Message)
}

func (s *APITestSuite) TestGalleryEditing() {
	s.Require().Equal(http.StatusOK, s.authed(http.MethodPost, "/v1/products/form/edit/1", nil).Code)

	w := s.multipart(http.MethodPost, "/v1/products/form/images", "files", upload{"side.png", "image/png", pngBytes})
	s.Require().Equal(http.StatusOK, w.Code)

	var resp formResponse
	s.decode(s.authed(http.MethodDelete, "/v1/products/form/images/0", nil), &resp)
	s.Require().Len(resp.Form.Draft.Images, 1)
	s.Equal("side.png", resp.Form.Draft.Images[0]["name"])

	w = s.authed(http.MethodDelete, "/v1/products/form/images/5", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No image at that position", s.decode(w, nil).Error.Message)
}

func (s *APITestSuite) TestUploadRejectsNonImages() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)

	w := s.multipart(http.MethodPut, "/v1/products/form/thumbnail", "file", upload{"notes.txt", "text/plain", []byte("hello")})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.multipart(http.MethodPost, "/v1/products/form/images", "files", upload{"fake.png", "image/png", []byte("not an image")})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("File rejected: fake.png", s.decode(w, nil).Error.Message)
}

func (s *APITestSuite) TestCancelReturnsToBrowsing() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)

	var resp formResponse
	s.decode(s.authed(http.MethodDelete, "/v1/products/form", nil), &resp)
	s.Equal("browsing", resp.Form.Mode.Kind)
	s.Equal("Product form closed", resp.Message)
}

func (s *APITestSuite) TestSessionsAreIsolated() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)

	other := s.login()
	var form formView
	s.decode(s.request(http.MethodGet, "/v1/products/form", other, nil), &form)
	s.Equal("browsing", form.Mode.Kind)
}

func (s *APITestSuite) TestAbortWithoutRunningSubmission() {
	w := s.authed(http.MethodDelete, "/v1/products/form/submit", nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("No submission is running", s.decode(w, nil).Error.Message)
}
