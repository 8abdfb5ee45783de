// internal/productform/controller.go
package productform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shamaim/admin-dashboard/internal/models"
)

// CatalogStore is the catalog backend as seen by the form.
type CatalogStore interface {
	List(ctx context.Context) ([]models.ProductRecord, error)
	Get(ctx context.Context, id int64) (*models.ProductRecord, error)
	Create(ctx context.Context, record models.ProductRecord) (string, error)
	Update(ctx context.Context, id int64, record models.ProductRecord) (string, error)
}

// SubmissionAudit describes the outcome of one submission.
type SubmissionAudit struct {
	SessionID string
	Operation Operation
	ProductID int64
	Stage     State
	Outcome   models.AuditOutcome
	Message   string
	Uploaded  []string
}

type AuditRecorder interface {
	RecordSubmission(ctx context.Context, entry SubmissionAudit)
}

type ModeKind string

const (
	ModeBrowsing ModeKind = "browsing"
	ModeCreating ModeKind = "creating"
	ModeEditing  ModeKind = "editing"
)

// Mode is the screen mode of a session. ProductID is set only when editing.
type Mode struct {
	Kind      ModeKind `json:"kind"`
	ProductID int64    `json:"product_id,omitempty"`
}

func BrowsingMode() Mode { return Mode{Kind: ModeBrowsing} }

func CreatingMode() Mode { return Mode{Kind: ModeCreating} }

func EditingMode(id int64) Mode { return Mode{Kind: ModeEditing, ProductID: id} }

func (m Mode) Operation() Operation {
	if m.Kind == ModeEditing {
		return OperationUpdate
	}
	return OperationCreate
}

type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateUploadingAssets State = "uploading_assets"
	StatePersisting      State = "persisting"
	StateSuccess         State = "success"
	StateFailed          State = "failed"
)

// InFlight reports whether a submission is running.
func (s State) InFlight() bool {
	return s == StateValidating || s == StateUploadingAssets || s == StatePersisting
}

// Outcome is returned by a successful submission.
type Outcome struct {
	Operation Operation            `json:"-"`
	Message   string               `json:"message"`
	Record    models.ProductRecord `json:"product"`
	Uploaded  []string             `json:"uploaded,omitempty"`
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	Mode          Mode         `json:"mode"`
	State         State        `json:"state"`
	Draft         ProductDraft `json:"draft"`
	LastError     string       `json:"last_error,omitempty"`
	Subcategories []string     `json:"subcategories,omitempty"`
}

// Controller owns one product draft and drives it through validation, asset
// upload and persistence. At most one submission runs at a time.
type Controller struct {
	sessionID string
	store     CatalogStore
	uploader  AssetUploader
	audit     AuditRecorder
	timeout   time.Duration
	validate  func(ProductDraft, Operation) error
	log       *logrus.Entry

	mu        sync.Mutex
	mode      Mode
	state     State
	draft     ProductDraft
	products  []models.ProductRecord
	lastError error
	abort     context.CancelFunc
}

type ControllerConfig struct {
	// SubmitTimeout bounds every backend and upload call. Zero disables it.
	SubmitTimeout time.Duration
	Audit         AuditRecorder
	Logger        *logrus.Logger
}

func NewController(sessionID string, store CatalogStore, uploader AssetUploader, cfg ControllerConfig) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		sessionID: sessionID,
		store:     store,
		uploader:  uploader,
		audit:     cfg.Audit,
		timeout:   cfg.SubmitTimeout,
		validate:  Validate,
		log:       logger.WithField("session_id", sessionID),
		mode:      BrowsingMode(),
		state:     StateIdle,
		draft:     NewDraft(),
	}
}

// StartCreate opens an add session with an empty draft.
func (c *Controller) StartCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.InFlight() {
		return ErrSubmissionInFlight
	}
	c.mode = CreatingMode()
	c.draft = NewDraft()
	c.state = StateIdle
	c.lastError = nil
	return nil
}

// StartEdit fetches a product and opens an edit session populated from it.
func (c *Controller) StartEdit(ctx context.Context, id int64) error {
	c.mu.Lock()
	inFlight := c.state.InFlight()
	c.mu.Unlock()
	if inFlight {
		return ErrSubmissionInFlight
	}

	ctx, cancel := c.bounded(ctx)
	defer cancel()

	// A stale copy returned with an error is refused: editing it would write
	// old values back over the backend's.
	record, err := c.store.Get(ctx, id)
	if err != nil {
		return &FetchError{Op: fmt.Sprintf("load product %d", id), Message: serverMessage(err), Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.InFlight() {
		return ErrSubmissionInFlight
	}
	c.mode = EditingMode(id)
	c.draft = DraftFromRecord(*record)
	c.state = StateIdle
	c.lastError = nil
	return nil
}

// Cancel discards the draft and returns to browsing.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.InFlight() {
		return ErrSubmissionInFlight
	}
	c.mode = BrowsingMode()
	c.draft = NewDraft()
	c.state = StateIdle
	c.lastError = nil
	return nil
}

// Update applies a change to the draft of the active session.
func (c *Controller) Update(u DraftUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode.Kind == ModeBrowsing {
		return ErrNoActiveSession
	}
	if c.state.InFlight() {
		return ErrSubmissionInFlight
	}
	return c.draft.Apply(u)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Mode:          c.mode,
		State:         c.state,
		Draft:         c.draft.Clone(),
		Subcategories: models.SubcategoriesOf(c.draft.Category),
	}
	if c.lastError != nil {
		s.LastError = c.lastError.Error()
	}
	return s
}

// Products returns the last product list fetched by this session.
func (c *Controller) Products() []models.ProductRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ProductRecord{}, c.products...)
}

// Refresh refetches the product list. On failure the previous list is kept
// and returned alongside a *FetchError; a stale copy supplied by the store is
// preferred over the session's own.
func (c *Controller) Refresh(ctx context.Context) ([]models.ProductRecord, error) {
	ctx, cancel := c.bounded(ctx)
	defer cancel()

	records, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if len(records) > 0 {
			c.products = records
		}
		return append([]models.ProductRecord{}, c.products...), &FetchError{Op: "list products", Message: serverMessage(err), Err: err}
	}
	c.products = records
	return append([]models.ProductRecord{}, records...), nil
}

// Submit validates the draft, uploads pending assets and persists the
// product. Any failure leaves the draft exactly as it was.
func (c *Controller) Submit(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	if c.mode.Kind == ModeBrowsing {
		c.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	if c.state.InFlight() {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	mode := c.mode
	draft := c.draft.Clone()
	ctx, cancel := c.bounded(ctx)
	defer cancel()
	c.abort = cancel
	c.state = StateValidating
	c.mu.Unlock()

	op := mode.Operation()
	log := c.log.WithFields(logrus.Fields{"operation": op.String(), "product_id": mode.ProductID})

	if err := c.validate(draft, op); err != nil {
		log.WithError(err).Info("Product draft rejected")
		c.finish(StateIdle, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		log.WithError(err).Info("Product submission stopped before upload")
		c.finish(StateFailed, err)
		c.record(ctx, SubmissionAudit{Operation: op, ProductID: mode.ProductID, Stage: StateValidating, Outcome: models.AuditOutcomeFailed, Message: err.Error()})
		return nil, err
	}

	c.transition(StateUploadingAssets)
	assets, err := ResolveAssets(ctx, c.uploader, draft.Thumbnail, draft.Images)
	if err != nil {
		log.WithError(err).Warn("Product asset upload failed")
		c.finish(StateFailed, err)
		c.record(ctx, SubmissionAudit{Operation: op, ProductID: mode.ProductID, Stage: StateUploadingAssets, Outcome: models.AuditOutcomeFailed, Message: err.Error()})
		return nil, err
	}

	c.transition(StatePersisting)
	record, message, err := c.persist(ctx, draft, assets, mode)
	if err != nil {
		log.WithError(err).Warn("Product persistence failed")
		c.finish(StateFailed, err)
		c.record(ctx, SubmissionAudit{Operation: op, ProductID: mode.ProductID, Stage: StatePersisting, Outcome: models.AuditOutcomeFailed, Message: err.Error(), Uploaded: assets.Uploaded})
		return nil, err
	}

	c.mu.Lock()
	c.mode = BrowsingMode()
	c.draft = NewDraft()
	c.state = StateSuccess
	c.lastError = nil
	c.abort = nil
	c.mu.Unlock()

	log.WithFields(logrus.Fields{"uploaded": len(assets.Uploaded), "record_id": record.ProductID()}).Info("Product saved")
	c.record(ctx, SubmissionAudit{Operation: op, ProductID: productIDFor(mode, record), Stage: StateSuccess, Outcome: models.AuditOutcomeSuccess, Message: message, Uploaded: assets.Uploaded})

	if _, err := c.Refresh(ctx); err != nil {
		log.WithError(err).Warn("Product list refresh after save failed")
	}

	return &Outcome{Operation: op, Message: message, Record: record, Uploaded: assets.Uploaded}, nil
}

func (c *Controller) persist(ctx context.Context, draft ProductDraft, assets ResolvedAssets, mode Mode) (models.ProductRecord, string, error) {
	if mode.Kind == ModeEditing {
		record := Normalize(draft, assets, OperationUpdate, 0)
		message, err := c.store.Update(ctx, mode.ProductID, record)
		if err != nil {
			return record, "", &PersistenceError{Op: fmt.Sprintf("update product %d", mode.ProductID), Message: serverMessage(err), Err: err}
		}
		return record, message, nil
	}

	// The identifier is derived from a fresh list, never the session's cached
	// one; a stale list is treated as a failure.
	existing, err := c.store.List(ctx)
	if err != nil {
		return models.ProductRecord{}, "", &PersistenceError{Op: "assign product id", Message: serverMessage(err), Err: err}
	}
	record := Normalize(draft, assets, OperationCreate, NextProductID(existing))
	message, err := c.store.Create(ctx, record)
	if err != nil {
		return record, "", &PersistenceError{Op: "create product", Message: serverMessage(err), Err: err}
	}
	return record, message, nil
}

func (c *Controller) transition(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) finish(s State, err error) {
	c.mu.Lock()
	c.state = s
	c.lastError = err
	c.abort = nil
	c.mu.Unlock()
}

// InFlight reports whether a submission is running.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.InFlight()
}

// Abort cancels the running submission, if any. The submission then fails
// with the draft intact. It reports whether there was anything to cancel.
func (c *Controller) Abort() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.abort == nil || !c.state.InFlight() {
		return false
	}
	c.abort()
	return true
}

func (c *Controller) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Controller) record(ctx context.Context, entry SubmissionAudit) {
	if c.audit == nil {
		return
	}
	entry.SessionID = c.sessionID
	c.audit.RecordSubmission(context.WithoutCancel(ctx), entry)
}

func productIDFor(mode Mode, record models.ProductRecord) int64 {
	if mode.Kind == ModeEditing {
		return mode.ProductID
	}
	return record.ProductID()
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
