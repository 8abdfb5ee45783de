// internal/services/catalog_cache.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shamaim/admin-dashboard/internal/models"
)

const (
	productListKey = "catalog:products"
	staleListTTL   = 24 * time.Hour
)

// CatalogBackend is the full set of catalog operations the dashboard uses.
type CatalogBackend interface {
	List(ctx context.Context) ([]models.ProductRecord, error)
	Get(ctx context.Context, id int64) (*models.ProductRecord, error)
	Create(ctx context.Context, record models.ProductRecord) (string, error)
	Update(ctx context.Context, id int64, record models.ProductRecord) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// StaleListError is returned with the last known product list when the
// backend could not be reached.
type StaleListError struct {
	CachedAt time.Time
	Err      error
}

func (e *StaleListError) Error() string {
	return fmt.Sprintf("product list is stale (cached %s): %v", e.CachedAt.Format(time.RFC3339), e.Err)
}

func (e *StaleListError) Unwrap() error {
	return e.Err
}

// ServerMessage passes through the backend's message, if any.
func (e *StaleListError) ServerMessage() string {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// StaleProductError is returned with the last known copy of a product when
// the backend could not be reached. The copy must not seed an edit.
type StaleProductError struct {
	ProductID int64
	CachedAt  time.Time
	Err       error
}

func (e *StaleProductError) Error() string {
	return fmt.Sprintf("product %d is stale (cached %s): %v", e.ProductID, e.CachedAt.Format(time.RFC3339), e.Err)
}

func (e *StaleProductError) Unwrap() error {
	return e.Err
}

func (e *StaleProductError) ServerMessage() string {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

type cachedProduct struct {
	CachedAt time.Time            `json:"cached_at"`
	Product  models.ProductRecord `json:"product"`
}

type cachedList struct {
	CachedAt time.Time              `json:"cached_at"`
	Products []models.ProductRecord `json:"products"`
}

// CachedCatalog decorates a CatalogBackend with redis. Reads always go to the
// backend; a cached copy only stands in when the backend fails, and is then
// returned with a stale error. Writes invalidate.
type CachedCatalog struct {
	next        CatalogBackend
	redisClient *redis.Client
	cacheTTL    time.Duration
	log         *logrus.Entry
}

func NewCachedCatalog(next CatalogBackend, redisClient *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *CachedCatalog {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &CachedCatalog{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		log:         logger.WithField("component", "catalog_cache"),
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("catalog:product:%d", id)
}

func (s *CachedCatalog) List(ctx context.Context) ([]models.ProductRecord, error) {
	records, err := s.next.List(ctx)
	if err == nil {
		if data, mErr := json.Marshal(cachedList{CachedAt: time.Now().UTC(), Products: records}); mErr == nil {
			if sErr := s.redisClient.Set(ctx, productListKey, data, staleListTTL).Err(); sErr != nil {
				s.log.WithError(sErr).Warn("Failed to cache product list")
			}
		}
		return records, nil
	}

	// The caller's context may be what failed; read the fallback regardless.
	val, cErr := s.redisClient.Get(context.WithoutCancel(ctx), productListKey).Bytes()
	if cErr != nil {
		return nil, err
	}

	var cached cachedList
	if uErr := json.Unmarshal(val, &cached); uErr != nil {
		s.log.WithError(uErr).Warn("Discarding unreadable cached product list")
		return nil, err
	}

	s.log.WithError(err).WithField("cached_at", cached.CachedAt).Warn("Serving stale product list")
	return cached.Products, &StaleListError{CachedAt: cached.CachedAt, Err: err}
}

func (s *CachedCatalog) Get(ctx context.Context, id int64) (*models.ProductRecord, error) {
	key := productKey(id)

	record, err := s.next.Get(ctx, id)
	if err == nil {
		if data, mErr := json.Marshal(cachedProduct{CachedAt: time.Now().UTC(), Product: *record}); mErr == nil {
			if sErr := s.redisClient.Set(ctx, key, data, s.cacheTTL).Err(); sErr != nil {
				s.log.WithError(sErr).WithField("product_id", id).Warn("Failed to cache product")
			}
		}
		return record, nil
	}
	if IsNotFound(err) {
		s.invalidate(ctx, id)
		return nil, err
	}

	val, cErr := s.redisClient.Get(context.WithoutCancel(ctx), key).Bytes()
	if cErr != nil {
		return nil, err
	}

	var cached cachedProduct
	if uErr := json.Unmarshal(val, &cached); uErr != nil {
		s.log.WithError(uErr).WithField("product_id", id).Warn("Discarding unreadable cached product")
		return nil, err
	}

	s.log.WithError(err).WithFields(logrus.Fields{"product_id": id, "cached_at": cached.CachedAt}).Warn("Serving stale product")
	return &cached.Product, &StaleProductError{ProductID: id, CachedAt: cached.CachedAt, Err: err}
}

func (s *CachedCatalog) Create(ctx context.Context, record models.ProductRecord) (string, error) {
	msg, err := s.next.Create(ctx, record)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, record.ProductID())
	return msg, nil
}

func (s *CachedCatalog) Update(ctx context.Context, id int64, record models.ProductRecord) (string, error) {
	msg, err := s.next.Update(ctx, id, record)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	return msg, nil
}

func (s *CachedCatalog) Delete(ctx context.Context, id int64) (string, error) {
	msg, err := s.next.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	return msg, nil
}

func (s *CachedCatalog) invalidate(ctx context.Context, id int64) {
	if err := s.redisClient.Del(context.WithoutCancel(ctx), productKey(id)).Err(); err != nil {
		s.log.WithError(err).WithField("product_id", id).Warn("Failed to invalidate cached product")
	}
}
