// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shamaim/admin-dashboard/internal/utils"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextLang, negotiateLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// negotiateLanguage picks the first preference of an Accept-Language header
// such as "bn-BD,bn;q=0.9,en;q=0.8".
func negotiateLanguage(header string) string {
	if header == "" {
		return "en"
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	switch strings.ToLower(first) {
	case "bn", "bn-bd", "bn-in", "bn_bd", "bn_in":
		return "bn"
	default:
		return "en"
	}
}
