package productform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shamaim/admin-dashboard/internal/models"
)

type apiError struct {
	message string
}

func (e *apiError) Error() string         { return "backend error: " + e.message }
func (e *apiError) ServerMessage() string { return e.message }

type fakeStore struct {
	mu       sync.Mutex
	records  []models.ProductRecord
	listErr  error
	getErr   error
	writeErr error
	// staleGet returns the matching record alongside getErr, the way a
	// cache fallback does.
	staleGet bool

	listCalls   int
	getCalls    int
	created     []models.ProductRecord
	updated     map[int64]models.ProductRecord
	updateCalls int
}

func (s *fakeStore) List(ctx context.Context) ([]models.ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.ProductRecord{}, s.records...), nil
}

func (s *fakeStore) Get(ctx context.Context, id int64) (*models.ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil && !s.staleGet {
		return nil, s.getErr
	}
	for _, r := range s.records {
		if r.ProductID() == id {
			rec := r
			return &rec, s.getErr
		}
	}
	return nil, &apiError{message: "Product not found"}
}

func (s *fakeStore) Create(ctx context.Context, record models.ProductRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return "", s.writeErr
	}
	s.created = append(s.created, record)
	s.records = append(s.records, record)
	return "Product added successfully", nil
}

func (s *fakeStore) Update(ctx context.Context, id int64, record models.ProductRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	if s.writeErr != nil {
		return "", s.writeErr
	}
	if s.updated == nil {
		s.updated = map[int64]models.ProductRecord{}
	}
	s.updated[id] = record
	return "Product updated successfully", nil
}

func (s *fakeStore) networkCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls + s.getCalls + len(s.created) + s.updateCalls
}

type fakeUploader struct {
	mu      sync.Mutex
	keys    []string
	names   []string
	failOn  string
	block   chan struct{}
	started chan struct{}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if u.started != nil {
		u.started <- struct{}{}
	}
	if u.block != nil {
		select {
		case <-u.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failOn != "" && strings.HasSuffix(key, u.failOn) {
		return "", errors.New("storage unavailable")
	}
	u.keys = append(u.keys, key)
	u.names = append(u.names, string(data))
	return fmt.Sprintf("https://cdn.example.com/%s", key), nil
}

func (u *fakeUploader) calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.keys)
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []SubmissionAudit
}

func (a *fakeAudit) RecordSubmission(ctx context.Context, entry SubmissionAudit) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func pending(name string) Asset {
	return FileAsset(PendingFile{Name: name, ContentType: "image/png", Data: []byte(name)})
}

func str(s string) *string { return &s }

func int64p(v int64) *int64 { return &v }
