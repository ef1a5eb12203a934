package routes

import (
	"net/http"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/database"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/middleware"
	productHandler "ecommerce-api/internal/product/handler"
	productRepository "ecommerce-api/internal/product/repository"
	productService "ecommerce-api/internal/product/service"
	userHandler "ecommerce-api/internal/user/handler"
	userRepository "ecommerce-api/internal/user/repository"
	userService "ecommerce-api/internal/user/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *database.Database) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepo := userRepository.NewRepository(db)
	userSvc := userService.NewService(userRepo, cfg)
	userHdl := userHandler.NewHandler(userSvc)

	productRepo := productRepository.NewRepository(db)
	productSvc := productService.NewService(productRepo)
	productHdl := productHandler.NewHandler(productSvc)

	root := router.Group("")
	{
		userHdl.RegisterRoutes(root)

		protected := root.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, userRepo))
		{
			userHdl.RegisterProtectedRoutes(protected)
			productHdl.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
