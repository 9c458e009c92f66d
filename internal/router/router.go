// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftconnect/backend/internal/config"
	"github.com/craftconnect/backend/internal/handlers"
	"github.com/craftconnect/backend/internal/middleware"
	"github.com/craftconnect/backend/internal/repository"
	"github.com/craftconnect/backend/internal/services"
	"github.com/craftconnect/backend/internal/store"
	"github.com/craftconnect/backend/internal/utils"
)

func Initialize(docStore store.DocumentStore, cfg *config.Config) (*gin.Engine, error) {
	// Repositories
	userRepo := repository.NewUserRepository(docStore)
	productRepo := repository.NewProductRepository(docStore)
	saleRepo := repository.NewSaleRepository(docStore)
	likeRepo := repository.NewLikeRepository(docStore)
	cacheRepo := repository.NewAnalysisCacheRepository(docStore)

	// Services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	visionService := services.NewVisionService(cfg.Vision)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, likeRepo)
	salesService := services.NewSalesService(saleRepo, productRepo)
	copilotService := services.NewCopilotService(visionService, storageService, cacheRepo)
	pricingService := services.NewPricingService()
	storyService := services.NewStoryService()
	dashboardService := services.NewDashboardService(productService, salesService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	salesHandler := handlers.NewSalesHandler(salesService)
	copilotHandler := handlers.NewCopilotHandler(copilotService, pricingService, storyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/me", userHandler.GetProfile)
			users.PUT("/me", userHandler.UpdateProfile)
			users.GET("/me/stats", productHandler.GetUserStats)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.ListProducts)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/like", productHandler.ToggleLike)
			}
		}

		// Sales routes
		sales := v1.Group("/sales")
		sales.Use(middleware.AuthRequired())
		{
			sales.POST("", salesHandler.RecordSale)
			sales.GET("", salesHandler.ListSales)
			sales.GET("/summary", salesHandler.GetSummary)
			sales.DELETE("/:id", salesHandler.DeleteSale)
		}

		// Copilot routes
		copilot := v1.Group("/copilot")
		copilot.Use(middleware.AuthRequired())
		{
			copilot.POST("/analyze", middleware.AnalyzeRateLimit(), copilotHandler.AnalyzeImage)
			copilot.POST("/pricing", copilotHandler.SuggestPrice)
			copilot.POST("/story", copilotHandler.GenerateStory)
		}

		// Dashboard
		v1.GET("/dashboard", middleware.AuthRequired(), dashboardHandler.GetDashboard)
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", cfg.Upload.LocalDir)
	}

	return r, nil
}
