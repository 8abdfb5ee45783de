// internal/services/catalog_client.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shamaim/admin-dashboard/internal/models"
)

// CatalogClient talks to the product catalog backend.
type CatalogClient struct {
	backend *backendClient
}

func NewCatalogClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *CatalogClient {
	return &CatalogClient{backend: newBackendClient("catalog", baseURL, timeout, logger)}
}

type productEnvelope struct {
	Product models.ProductRecord `json:"product"`
}

func (c *CatalogClient) List(ctx context.Context) ([]models.ProductRecord, error) {
	var records []models.ProductRecord
	if err := c.backend.do(ctx, http.MethodGet, "/api/allProducts", nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.ProductRecord{}
	}
	return records, nil
}

func (c *CatalogClient) Get(ctx context.Context, id int64) (*models.ProductRecord, error) {
	var record models.ProductRecord
	if err := c.backend.do(ctx, http.MethodGet, fmt.Sprintf("/api/getProduct/%d", id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create posts a new product and returns the backend's confirmation message.
func (c *CatalogClient) Create(ctx context.Context, record models.ProductRecord) (string, error) {
	var resp messageResponse
	if err := c.backend.do(ctx, http.MethodPost, "/api/newProduct", productEnvelope{Product: record}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *CatalogClient) Update(ctx context.Context, id int64, record models.ProductRecord) (string, error) {
	var resp messageResponse
	if err := c.backend.do(ctx, http.MethodPut, fmt.Sprintf("/api/updateProduct/%d", id), productEnvelope{Product: record}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *CatalogClient) Delete(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	if err := c.backend.do(ctx, http.MethodDelete, fmt.Sprintf("/api/deleteProduct/%d", id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
