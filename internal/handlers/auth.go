// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shamaim/admin-dashboard/internal/i18n"
	"github.com/shamaim/admin-dashboard/internal/productform"
	"github.com/shamaim/admin-dashboard/internal/services"
	"github.com/shamaim/admin-dashboard/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	registry    *productform.Registry
}

func NewAuthHandler(authService *services.AuthService, registry *productform.Registry) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		registry:    registry,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthNotConfigured):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "AUTH_NOT_CONFIGURED", i18n.T(lang, i18n.KeyAuthNotConfigured), nil)
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"session_id": authResponse.SessionID,
		"token":      authResponse.AccessToken,
		"token_type": authResponse.TokenType,
		"expires_in": authResponse.ExpiresIn,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	// The token itself stays valid until it expires; only the session's
	// product form is discarded.
	if sessionID, ok := utils.GetSessionIDFromContext(c); ok {
		h.registry.Drop(sessionID)
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}
