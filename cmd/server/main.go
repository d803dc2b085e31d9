package main

import (
	"log"
	"net/http"
	"time"

	"tableside/internal/config"
	"tableside/internal/database"
	"tableside/internal/handlers"
	"tableside/internal/middleware"
	"tableside/internal/repository"
	"tableside/internal/services"
	"tableside/internal/session"
	"tableside/pkg/imagestore"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize session store
	sessions, err := session.NewRedisStore(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize image store
	images, err := imagestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize upload directory:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	menuService := services.NewMenuService(menuRepo)
	orderService := services.NewOrderService(orderRepo)

	// Initialize handlers
	sessionTTL := time.Duration(cfg.SessionTTL) * time.Second
	authHandler := handlers.NewAuthHandler(authService, sessions, sessionTTL, cfg.CookieSecure)
	menuHandler := handlers.NewMenuHandler(menuService, images)
	orderHandler := handlers.NewOrderHandler(orderService, sessions)

	// Setup routes
	router := gin.Default()
	router.MaxMultipartMemory = 8 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "tableside"})
	})

	// Uploaded images, browsable cross-origin
	uploads := router.Group(imagestore.URLPrefix)
	uploads.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	})
	uploads.Static("/", cfg.UploadDir)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/menu", menuHandler.List)
		api.GET("/orders", orderHandler.List)
		api.POST("/orders", orderHandler.Create)
	}

	admin := router.Group("/api")
	admin.Use(middleware.AuthRequired(sessions))
	{
		admin.GET("/auth/user", authHandler.CurrentUser)

		admin.POST("/menu", menuHandler.Create)
		admin.PUT("/menu/:id", menuHandler.Update)
		admin.DELETE("/menu/:id", menuHandler.Delete)

		admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
