// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shamaim/admin-dashboard/internal/config"
	"github.com/shamaim/admin-dashboard/internal/database"
	"github.com/shamaim/admin-dashboard/internal/i18n"
	"github.com/shamaim/admin-dashboard/internal/productform"
	"github.com/shamaim/admin-dashboard/internal/router"
	"github.com/shamaim/admin-dashboard/internal/services"
)

func main() {
	logger := logrus.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logger.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Audit trail database is optional
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
	}
	audit := services.NewAuditService(db, logger)

	storage, err := services.NewStorageService(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize asset storage")
	}

	var catalog services.CatalogBackend = services.NewCatalogClient(cfg.Backend.CatalogURL, cfg.Backend.RequestTimeout, logger)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, product catalog will not be cached")
		} else {
			catalog = services.NewCachedCatalog(catalog, redisClient, cfg.Redis.CacheTTL, logger)
		}
	}

	customers := services.NewCustomerClient(cfg.Backend.CustomerURL, cfg.Backend.RequestTimeout, logger)

	registry := productform.NewRegistry(catalog, storage, productform.ControllerConfig{
		SubmitTimeout: cfg.Form.SubmitTimeout,
		Audit:         audit,
		Logger:        logger,
	})
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	registry.StartJanitor(janitorCtx, time.Minute, cfg.Form.SessionIdleTimeout)

	// Initialize router
	r := router.Initialize(router.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Catalog:   catalog,
		Customers: customers,
		Storage:   storage,
		Audit:     audit,
		Registry:  registry,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Environment,
			"catalog_api": cfg.Backend.CatalogURL,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
