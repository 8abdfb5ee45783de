// internal/handlers/product.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shamaim/admin-dashboard/internal/i18n"
	"github.com/shamaim/admin-dashboard/internal/models"
	"github.com/shamaim/admin-dashboard/internal/productform"
	"github.com/shamaim/admin-dashboard/internal/services"
	"github.com/shamaim/admin-dashboard/internal/utils"
)

type ProductHandler struct {
	registry     *productform.Registry
	catalog      services.CatalogBackend
	maxImageSize int64
	log          *logrus.Logger
}

func NewProductHandler(registry *productform.Registry, catalog services.CatalogBackend, maxImageSize int64, logger *logrus.Logger) *ProductHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductHandler{
		registry:     registry,
		catalog:      catalog,
		maxImageSize: maxImageSize,
		log:          logger,
	}
}

// session returns the form controller of the caller's admin session.
func (h *ProductHandler) session(c *gin.Context) (*productform.Controller, bool) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}
	return h.registry.Session(sessionID), true
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	records, err := ctrl.Refresh(c.Request.Context())
	notice := ""
	if err != nil {
		if len(records) == 0 {
			h.log.WithError(err).Warn("Product list fetch failed")
			utils.BadGatewayResponse(c, upstreamMessage(err, i18n.T(lang, i18n.KeyProductFetchFailed)))
			return
		}
		h.log.WithError(err).Info("Serving stale product list")
		notice = i18n.T(lang, i18n.KeyProductListStale)
	}

	filtered := make([]models.ProductRecord, 0, len(records))
	for _, record := range records {
		if params.Category != "" && record.Category != params.Category {
			continue
		}
		if !record.MatchesSearch(params.Search) {
			continue
		}
		filtered = append(filtered, record)
	}

	page := utils.Paginate(filtered, params)
	result := utils.CreatePaginationResult(page, int64(len(filtered)), params)
	utils.PaginatedResponseWithNotice(c, result, notice)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := productIDParam(c)
	if !ok {
		return
	}

	record, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if services.IsNotFound(err) {
			utils.NotFoundResponse(c, "product")
			return
		}
		var stale *services.StaleProductError
		if errors.As(err, &stale) && record != nil {
			h.log.WithError(err).Info("Serving stale product")
			utils.SuccessResponseWithMeta(c, record, gin.H{"notice": i18n.T(lang, i18n.KeyProductStale)})
			return
		}
		utils.BadGatewayResponse(c, upstreamMessage(err, i18n.T(lang, i18n.KeyProductFetchFailed)))
		return
	}

	utils.SuccessResponse(c, record)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := productIDParam(c)
	if !ok {
		return
	}

	message, err := h.catalog.Delete(c.Request.Context(), id)
	if err != nil {
		if services.IsNotFound(err) {
			utils.NotFoundResponse(c, "product")
			return
		}
		h.log.WithError(err).WithField("product_id", id).Warn("Product delete failed")
		utils.BadGatewayResponse(c, upstreamMessage(err, i18n.T(lang, i18n.KeyProductPersistFailed)))
		return
	}
	if message == "" {
		message = i18n.T(lang, i18n.KeyProductDeleted)
	}

	utils.SuccessResponse(c, gin.H{"message": message})
}

// GET /catalog/vocabulary
func (h *ProductHandler) GetVocabulary(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"categories": models.Categories,
		"genres":     models.Genres,
		"sizes":      models.Sizes,
		"genders":    models.Genders,
	})
}

// GET /products/form
func (h *ProductHandler) GetForm(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, ctrl.Snapshot())
}

// POST /products/form
func (h *ProductHandler) StartCreate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	if err := ctrl.StartCreate(); err != nil {
		h.formError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormStarted),
		"form":    ctrl.Snapshot(),
	})
}

// POST /products/form/edit/:id
func (h *ProductHandler) StartEdit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := productIDParam(c)
	if !ok {
		return
	}
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	if err := ctrl.StartEdit(c.Request.Context(), id); err != nil {
		if services.IsNotFound(err) {
			utils.NotFoundResponse(c, "product")
			return
		}
		h.formError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormStarted),
		"form":    ctrl.Snapshot(),
	})
}

// PATCH /products/form
func (h *ProductHandler) UpdateForm(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req productform.DraftUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	h.applyUpdate(c, req)
}

// PUT /products/form/thumbnail
func (h *ProductHandler) SetThumbnail(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "file"), err.Error())
		return
	}

	file, err := stageFile(header, services.GetDefaultUploadOptions(productform.ThumbnailFolder, h.maxImageSize))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFormFileRejected, header.Filename), err.Error())
		return
	}

	thumbnail := productform.FileAsset(file)
	h.applyUpdate(c, productform.DraftUpdate{Thumbnail: &thumbnail})
}

// POST /products/form/images
func (h *ProductHandler) AddImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "files"), err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "files"), nil)
		return
	}

	opts := services.GetDefaultUploadOptions(productform.GalleryFolder, h.maxImageSize)
	images := make([]productform.Asset, 0, len(headers))
	for _, header := range headers {
		file, err := stageFile(header, opts)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFormFileRejected, header.Filename), err.Error())
			return
		}
		images = append(images, productform.FileAsset(file))
	}

	h.applyUpdate(c, productform.DraftUpdate{AppendImages: images})
}

// DELETE /products/form/images/:index
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "index"), nil)
		return
	}

	h.applyUpdate(c, productform.DraftUpdate{RemoveImage: &index})
}

// POST /products/form/submit
func (h *ProductHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	outcome, err := ctrl.Submit(c.Request.Context())
	if err != nil {
		h.formError(c, err)
		return
	}

	message := outcome.Message
	if outcome.Operation == productform.OperationUpdate {
		if message == "" {
			message = i18n.T(lang, i18n.KeyProductUpdated)
		}
		utils.SuccessResponse(c, gin.H{
			"message":  message,
			"product":  outcome.Record,
			"uploaded": outcome.Uploaded,
		})
		return
	}

	if message == "" {
		message = i18n.T(lang, i18n.KeyProductCreated)
	}
	utils.CreatedResponse(c, gin.H{
		"message":  message,
		"product":  outcome.Record,
		"uploaded": outcome.Uploaded,
	})
}

// DELETE /products/form/submit
func (h *ProductHandler) AbortSubmit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	if !ctrl.Abort() {
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyFormNothingRunning))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormSubmitCancelled),
	})
}

// DELETE /products/form
func (h *ProductHandler) CancelForm(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	if err := ctrl.Cancel(); err != nil {
		h.formError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormCancelled),
		"form":    ctrl.Snapshot(),
	})
}

func (h *ProductHandler) applyUpdate(c *gin.Context, update productform.DraftUpdate) {
	lang := utils.GetLangFromContext(c)

	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	if err := ctrl.Update(update); err != nil {
		h.formError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFormUpdated),
		"form":    ctrl.Snapshot(),
	})
}

// formError maps product form failures onto the response envelope.
func (h *ProductHandler) formError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var (
		validationErr  *productform.ValidationError
		uploadErr      *productform.UploadError
		persistenceErr *productform.PersistenceError
		fetchErr       *productform.FetchError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", validationMessage(lang, validationErr), validationErr)
	case errors.Is(err, productform.ErrSubmissionInFlight):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyFormInFlight))
	case errors.Is(err, productform.ErrNoActiveSession):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyFormNoSession))
	case errors.Is(err, productform.ErrImageIndexOutOfRange):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFormImageOutOfRange), nil)
	case errors.Is(err, context.DeadlineExceeded):
		utils.ErrorResponse(c, http.StatusGatewayTimeout, "SUBMIT_TIMEOUT", i18n.T(lang, i18n.KeyFormSubmitTimeout), nil)
	case errors.Is(err, context.Canceled):
		utils.ErrorResponse(c, http.StatusRequestTimeout, "SUBMIT_CANCELLED", i18n.T(lang, i18n.KeyFormSubmitCancelled), nil)
	case errors.As(err, &uploadErr):
		utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyProductUploadFailed))
	case errors.As(err, &persistenceErr):
		message := persistenceErr.Message
		if message == "" {
			message = i18n.T(lang, i18n.KeyProductPersistFailed)
		}
		utils.BadGatewayResponse(c, message)
	case errors.As(err, &fetchErr):
		message := fetchErr.Message
		if message == "" {
			message = i18n.T(lang, i18n.KeyProductFetchFailed)
		}
		utils.BadGatewayResponse(c, message)
	default:
		h.log.WithError(err).Error("Unexpected product form error")
		utils.InternalErrorResponse(c, "")
	}
}

func validationMessage(lang string, err *productform.ValidationError) string {
	switch {
	case len(err.MissingFields) > 0:
		return i18n.T(lang, i18n.KeyValidationMissingFields, strings.Join(err.MissingFields, ", "))
	case len(err.InvalidFields) > 0:
		return i18n.T(lang, i18n.KeyValidationInvalidFields, strings.Join(err.InvalidFields, ", "))
	case err.EmptyGenre:
		return i18n.T(lang, i18n.KeyValidationEmptyGenre)
	case err.EmptySize:
		return i18n.T(lang, i18n.KeyValidationEmptySize)
	case err.InvalidStock:
		return i18n.T(lang, i18n.KeyValidationInvalidStock)
	default:
		return i18n.T(lang, i18n.KeyValidationInvalid, "product")
	}
}

// upstreamMessage prefers the backend's own message over fallback.
func upstreamMessage(err error, fallback string) string {
	var m interface{ ServerMessage() string }
	if errors.As(err, &m) && m.ServerMessage() != "" {
		return m.ServerMessage()
	}
	return fallback
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "product ID"), nil)
		return 0, false
	}
	return id, true
}

// stageFile reads a multipart upload into a pending file after checking its
// size, extension and image signature.
func stageFile(header *multipart.FileHeader, opts services.UploadOptions) (productform.PendingFile, error) {
	if err := services.CheckFile(header, opts); err != nil {
		return productform.PendingFile{}, err
	}

	src, err := header.Open()
	if err != nil {
		return productform.PendingFile{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, opts.MaxSize+1))
	if err != nil {
		return productform.PendingFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > opts.MaxSize {
		return productform.PendingFile{}, fmt.Errorf("file exceeds maximum allowed size %d bytes", opts.MaxSize)
	}
	if err := services.ValidateImage(data); err != nil {
		return productform.PendingFile{}, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return productform.PendingFile{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
