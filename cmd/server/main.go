package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"go-supermart-pos/internal/auth"
	"go-supermart-pos/internal/database"
	"go-supermart-pos/internal/handlers"
	"go-supermart-pos/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.Connect()
	h := handlers.New(db)

	r := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/auth/logout", h.Logout)

		api.GET("/products", middleware.RequirePermission(auth.OpProductRead), h.GetProducts)
		api.GET("/products/:id", middleware.RequirePermission(auth.OpProductRead), h.GetProduct)
		api.POST("/products", middleware.RequirePermission(auth.OpProductCreate), h.AddProduct)
		api.PUT("/products/:id", middleware.RequirePermission(auth.OpProductUpdate), h.UpdateProduct)
		api.DELETE("/products/:id", middleware.RequirePermission(auth.OpProductDelete), h.DeleteProduct)

		api.POST("/sales", middleware.RequirePermission(auth.OpSaleCreate), h.ProcessSale)
		api.GET("/sales", middleware.RequirePermission(auth.OpSaleRead), h.GetSales)

		dashboard := api.Group("/dashboard", middleware.RequirePermission(auth.OpDashboardRead))
		{
			dashboard.GET("/stats", h.GetDashboardStats)
			dashboard.GET("/recent-sales", h.GetRecentSales)
			dashboard.GET("/low-stock", h.GetLowStock)
			dashboard.GET("/expiring", h.GetExpiring)
			dashboard.GET("/sales-by-payment", h.GetSalesByPayment)
		}

		api.GET("/audit", middleware.RequirePermission(auth.OpAuditRead), h.GetAuditLogs)

		api.GET("/users", middleware.RequirePermission(auth.OpUserManage), h.GetUsers)
		api.PUT("/users/:id/deactivate", middleware.RequirePermission(auth.OpUserManage), h.DeactivateUser)

		api.POST("/ai/ask", middleware.RequirePermission(auth.OpAIAsk), h.AskAI)
	}

	// JSON catch-all so unmatched API paths never fall through to HTML.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "API route " + c.Request.Method + " " + c.Request.URL.Path + " not found",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Server starting on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
