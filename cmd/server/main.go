package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmacare-system/config"
	"pharmacare-system/internal/billing"
	"pharmacare-system/internal/database"
	"pharmacare-system/internal/server/handlers"
	"pharmacare-system/internal/server/middleware"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.NewConnection(database.DSN(cfg.DB))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb, err := config.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Warning: Redis unavailable, product cache disabled: %v", err)
		rdb = nil
	}

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg.HTTP.RateLimit))

	authHandler := handlers.NewAuthHandler(cfg.Auth)
	productHandler := handlers.NewProductHandler(db, rdb)
	customerHandler := handlers.NewCustomerHandler(db)
	invoiceHandler := handlers.NewInvoiceHandler(db, billing.NewPrefixSequence())
	settingsHandler := handlers.NewSettingsHandler(db)
	backupHandler := handlers.NewBackupHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		products := protected.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.POST("", customerHandler.Create)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.List)
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("/next-number", invoiceHandler.NextNumber)
			invoices.GET("/export/csv", invoiceHandler.ExportCSV)
			invoices.GET("/:id", invoiceHandler.Get)
			invoices.PUT("/:id", invoiceHandler.Update)
			invoices.DELETE("/:id", invoiceHandler.Delete)
			invoices.GET("/:id/pdf", invoiceHandler.RenderPDF)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("", settingsHandler.Get)
			settings.PUT("", settingsHandler.Put)
		}

		protected.GET("/backup", backupHandler.Get)
		protected.GET("/dashboard/summary", dashboardHandler.Summary)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	port := ":" + cfg.HTTP.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
