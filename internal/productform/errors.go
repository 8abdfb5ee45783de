// internal/productform/errors.go
package productform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSubmissionInFlight = errors.New("a product submission is already in progress")
	ErrNoActiveSession    = errors.New("no product form session is active")
)

// ValidationError lists every reason a draft was rejected before any network
// call was made.
type ValidationError struct {
	MissingFields []string `json:"missing_fields,omitempty"`
	InvalidFields []string `json:"invalid_fields,omitempty"`
	InvalidStock  bool     `json:"invalid_stock,omitempty"`
	EmptyGenre    bool     `json:"empty_genre,omitempty"`
	EmptySize     bool     `json:"empty_size,omitempty"`
}

func (e *ValidationError) Error() string {
	switch {
	case len(e.MissingFields) > 0:
		return "missing required fields: " + strings.Join(e.MissingFields, ", ")
	case len(e.InvalidFields) > 0:
		return "invalid fields: " + strings.Join(e.InvalidFields, ", ")
	case e.EmptyGenre:
		return "at least one genre must be selected"
	case e.EmptySize:
		return "at least one size must be selected"
	case e.InvalidStock:
		return "every selected size needs a positive stock value"
	default:
		return "invalid product draft"
	}
}

// UploadError reports a failed asset upload. Nothing was persisted.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload asset %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistenceError reports that the catalog backend rejected or never
// received a create/update. Message carries the server's text when present.
type PersistenceError struct {
	Op      string
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed list or detail load.
type FetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// serverMessage extracts a backend-provided message from err, if any.
func serverMessage(err error) string {
	var m interface{ ServerMessage() string }
	if errors.As(err, &m) {
		return m.ServerMessage()
	}
	return ""
}
