package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fanzone/fanzone-backend/config"
	"github.com/fanzone/fanzone-backend/internal/app/controller"
	"github.com/fanzone/fanzone-backend/internal/app/repository"
	"github.com/fanzone/fanzone-backend/internal/app/service"
	"github.com/fanzone/fanzone-backend/internal/cache"
	"github.com/fanzone/fanzone-backend/internal/db"
	"github.com/fanzone/fanzone-backend/internal/mail"
	"github.com/fanzone/fanzone-backend/internal/router"
	"github.com/fanzone/fanzone-backend/internal/storage"
	"github.com/fanzone/fanzone-backend/pkg/logger"
	"github.com/fanzone/fanzone-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting FANZONE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it the catalog just skips the page cache.
	var pageCache *cache.ProductPageCache
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, catalog cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			pageCache = cache.NewProductPageCache(redis.GetClient(), cfg.Redis.CacheTTL)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close redis connection", err)
				}
			}()
		}
	}

	// Mail provider and retry outbox
	var mailer mail.Mailer = mail.DisabledMailer{}
	if cfg.Mail.APIKey != "" {
		mailer = mail.NewResendMailer(cfg.Mail.APIKey, cfg.Mail.From)
	} else {
		logger.Warn("RESEND_API_KEY not set, outgoing mail is disabled")
	}
	outbox := mail.NewOutbox(mailer, cfg.Mail.RetryInterval, cfg.Mail.MaxAttempts)
	if err := outbox.Start(); err != nil {
		logger.Fatal("Failed to start mail outbox", err)
	}
	defer outbox.Stop()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	productService := service.NewProductService(productRepo, pageCache)
	mailService := service.NewMailService(outbox, cfg.Mail.OwnerEmail)
	orderService := service.NewOrderService(orderRepo, mailService)

	// Initialize controllers
	productController := controller.NewProductController(productService)
	orderController := controller.NewOrderController(orderService)
	mailController := controller.NewMailController(mailService)

	var uploadController *controller.UploadController
	if cfg.S3.Bucket != "" {
		uploadController = controller.NewUploadController(storage.NewImageStore(cfg.S3))
	} else {
		logger.Warn("AWS_S3_BUCKET not set, image uploads are disabled")
	}

	// Setup router
	r := router.NewRouter(
		productController,
		orderController,
		mailController,
		uploadController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
