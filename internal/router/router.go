// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shamaim/admin-dashboard/internal/config"
	"github.com/shamaim/admin-dashboard/internal/handlers"
	"github.com/shamaim/admin-dashboard/internal/middleware"
	"github.com/shamaim/admin-dashboard/internal/productform"
	"github.com/shamaim/admin-dashboard/internal/services"
	"github.com/shamaim/admin-dashboard/internal/utils"
)

// Dependencies are the services the HTTP surface is wired to. Audit may be
// nil.
type Dependencies struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Catalog   services.CatalogBackend
	Customers *services.CustomerClient
	Storage   *services.StorageService
	Audit     *services.AuditService
	Registry  *productform.Registry
}

func Initialize(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.NewAuthService(cfg), deps.Registry)
	productHandler := handlers.NewProductHandler(deps.Registry, deps.Catalog, cfg.Form.MaxImageSize, deps.Logger)
	customerHandler := handlers.NewCustomerHandler(deps.Customers)
	auditHandler := handlers.NewAuditHandler(deps.Audit)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	if cfg.Server.RateLimit {
		r.Use(middleware.GeneralRateLimit())
	}
	r.Use(middleware.AuditLogMiddleware(deps.Audit))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Locally stored assets
	if dir := deps.Storage.LocalDir(); dir != "" {
		r.Static("/uploads", dir)
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		if cfg.Server.RateLimit {
			auth.Use(middleware.AuthRateLimit())
		}
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
		}

		admin := v1.Group("")
		admin.Use(middleware.AuthRequired(), middleware.RoleRequired(services.AdminRole))

		// Product routes
		products := admin.Group("/products")
		{
			products.GET("", productHandler.GetProducts)

			form := products.Group("/form")
			{
				form.GET("", productHandler.GetForm)
				form.POST("", productHandler.StartCreate)
				form.PATCH("", productHandler.UpdateForm)
				form.DELETE("", productHandler.CancelForm)
				form.POST("/edit/:id", productHandler.StartEdit)
				form.POST("/submit", productHandler.Submit)
				form.DELETE("/submit", productHandler.AbortSubmit)

				uploads := form.Group("")
				if cfg.Server.RateLimit {
					uploads.Use(middleware.UploadRateLimit())
				}
				uploads.PUT("/thumbnail", productHandler.SetThumbnail)
				uploads.POST("/images", productHandler.AddImages)
				uploads.DELETE("/images/:index", productHandler.RemoveImage)
			}

			products.GET("/:id", productHandler.GetProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		admin.GET("/catalog/vocabulary", productHandler.GetVocabulary)

		// Customer routes
		admin.GET("/users", customerHandler.GetUsers)
		admin.GET("/users/:id/orders", customerHandler.GetUserOrders)
		admin.GET("/orders", customerHandler.GetOrders)

		admin.GET("/audit", auditHandler.GetRecent)
	}

	return r
}
