package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fanzone/fanzone-backend/config"
	"github.com/fanzone/fanzone-backend/internal/app/controller"
	"github.com/fanzone/fanzone-backend/internal/middleware"
)

type Router struct {
	productController *controller.ProductController
	orderController   *controller.OrderController
	mailController    *controller.MailController
	uploadController  *controller.UploadController
	config            *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	orderController *controller.OrderController,
	mailController *controller.MailController,
	uploadController *controller.UploadController,
	cfg *config.Config,
) *Router {
	return &Router{
		productController: productController,
		orderController:   orderController,
		mailController:    mailController,
		uploadController:  uploadController,
		config:            cfg,
	}
}

// Setup mounts all routes at the root. The storefront calls these paths
// directly, so there is no version prefix.
func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "FANZONE API is running",
		})
	})

	adminOnly := middleware.RequireAPIKey(r.config.Admin.APIKey)

	products := router.Group("/products")
	{
		products.GET("", r.productController.ListProducts)
		products.GET("/search", r.productController.SearchProducts)
		products.GET("/related/:category/:id", r.productController.GetRelatedProducts)
		products.GET("/:id", r.productController.GetProduct)

		products.POST("", adminOnly, r.productController.CreateProduct)
		products.PATCH("/:id", adminOnly, r.productController.UpdateProduct)
		products.DELETE("/:id", adminOnly, r.productController.DeleteProduct)
	}

	orders := router.Group("/orders")
	{
		orders.POST("", r.orderController.CreateOrder)

		orders.GET("", adminOnly, r.orderController.ListOrders)
		orders.GET("/export", adminOnly, r.orderController.ExportOrders)
		orders.GET("/:id", adminOnly, r.orderController.GetOrder)
		orders.PATCH("/:id", adminOnly, r.orderController.UpdateOrder)
		orders.DELETE("/:id", adminOnly, r.orderController.DeleteOrder)
	}

	router.POST("/mail/contact", r.mailController.Contact)

	if r.uploadController != nil {
		router.POST("/uploads/presign", adminOnly, r.uploadController.Presign)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-API-Key, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
