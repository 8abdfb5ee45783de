// internal/handlers/audit.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shamaim/admin-dashboard/internal/services"
	"github.com/shamaim/admin-dashboard/internal/utils"
)

type AuditHandler struct {
	audit *services.AuditService
}

func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GET /audit
func (h *AuditHandler) GetRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	sessionID, _ := utils.GetSessionIDFromContext(c)
	logs, err := h.audit.Recent(c.Request.Context(), sessionID, limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, logs)
}
