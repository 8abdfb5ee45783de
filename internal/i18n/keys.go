// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyError         = "error"
	KeyInternalError = "server.internal_error"
	KeyRateLimited   = "server.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthNotConfigured      = "auth.not_configured"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthAccessDenied       = "auth.access_denied"

	// Validation
	KeyValidationInvalid       = "validation.invalid"
	KeyValidationMissingFields = "validation.missing_fields"
	KeyValidationInvalidFields = "validation.invalid_fields"
	KeyValidationEmptyGenre    = "validation.empty_genre"
	KeyValidationEmptySize     = "validation.empty_size"
	KeyValidationInvalidStock  = "validation.invalid_stock"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductUpdated       = "product.updated"
	KeyProductDeleted       = "product.deleted"
	KeyProductNotFound      = "product.not_found"
	KeyProductListStale     = "product.list_stale"
	KeyProductStale         = "product.stale"
	KeyProductFetchFailed   = "product.fetch_failed"
	KeyProductUploadFailed  = "product.upload_failed"
	KeyProductPersistFailed = "product.persist_failed"

	// Product form sessions
	KeyFormStarted         = "form.started"
	KeyFormCancelled       = "form.cancelled"
	KeyFormUpdated         = "form.updated"
	KeyFormInFlight        = "form.in_flight"
	KeyFormNoSession       = "form.no_session"
	KeyFormImageOutOfRange = "form.image_out_of_range"
	KeyFormFileRejected    = "form.file_rejected"
	KeyFormSubmitTimeout   = "form.submit_timeout"
	KeyFormSubmitCancelled = "form.submit_cancelled"
	KeyFormNothingRunning  = "form.nothing_running"

	// Customers and orders
	KeyUserNotFound     = "user.not_found"
	KeyUserFetchFailed  = "user.fetch_failed"
	KeyOrderFetchFailed = "order.fetch_failed"
)
