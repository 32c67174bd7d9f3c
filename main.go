package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect-api/config"
	"github.com/careconnect/careconnect-api/controllers"
	"github.com/careconnect/careconnect-api/middleware"
	"github.com/careconnect/careconnect-api/models"
	"github.com/careconnect/careconnect-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting CareConnect API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Booking{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Wire the simulated payment processor
	services.SetPaymentProcessor(services.NewSimulatedProcessor(
		time.Duration(cfg.PaymentDelayMS) * time.Millisecond))

	// Wire the care-advice service when a key is configured; without a
	// key the advice endpoint reports itself unavailable
	if cfg.GeminiAPIKey != "" {
		advice, err := services.NewGeminiAdviceService(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize advice service: %v", err)
		}
		services.SetAdviceService(advice)
	} else {
		log.Println("GEMINI_API_KEY not set, care advice endpoint disabled")
	}

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the router with all API routes and middleware
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Service catalog
		v1.GET("/services", controllers.ListServices)

		// Authentication
		v1.POST("/auth/signup", controllers.Signup)
		v1.POST("/auth/login", controllers.Login)
		v1.POST("/auth/logout", middleware.RequireSession(cfg), controllers.Logout)
		v1.GET("/users/me", middleware.RequireSession(cfg), controllers.GetMyProfile)

		// Bookings
		v1.POST("/bookings", middleware.RequireSession(cfg), controllers.CreateBooking)
		v1.GET("/bookings", middleware.RequireSession(cfg), controllers.ListBookings)
		v1.GET("/bookings/:id", middleware.RequireSession(cfg), controllers.GetBooking)
		v1.POST("/bookings/:id/cancel", middleware.RequireSession(cfg), controllers.CancelBooking)
		v1.POST("/bookings/:id/payment", middleware.RequireSession(cfg), controllers.CompletePayment)

		// Care advice
		v1.POST("/advice", controllers.GetAdvice)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "CareConnect API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
