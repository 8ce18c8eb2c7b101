package main

import (
	"errors"
	"net/http"

	"github.com/HassanAtaya/digitalmenu/internal/handler"
	"github.com/HassanAtaya/digitalmenu/internal/media"
	mid "github.com/HassanAtaya/digitalmenu/internal/middleware"
	"github.com/HassanAtaya/digitalmenu/internal/model"
	"github.com/HassanAtaya/digitalmenu/pkg/config"
	"github.com/HassanAtaya/digitalmenu/pkg/database"
	"github.com/HassanAtaya/digitalmenu/pkg/hashutil"
	"github.com/HassanAtaya/digitalmenu/pkg/jwtutil"
	"github.com/HassanAtaya/digitalmenu/pkg/logger"
	"github.com/HassanAtaya/digitalmenu/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting digital-menu service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize media storage
	if err := media.Initialize(appConfig.Media.Dir, appConfig.Media.BaseURL); err != nil {
		log.Fatal("Failed to initialize media storage", zap.Error(err))
	}

	// Initialize database
	if _, err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.User{},
		&model.Restaurant{},
		&model.Setting{},
		&model.Category{},
		&model.Ingredient{},
		&model.Product{},
		&model.ProductCategory{},
		&model.ProductIngredient{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := seedAdmin(database.GetDB(), appConfig); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Uploaded media
	e.Static("/media", appConfig.Media.Dir)

	api := e.Group("/api")
	api.POST("/login", handler.Login)

	// Public menu, no token required
	api.GET("/public/menu/:slug", handler.PublicMenu)

	// Admin-only restaurant management, addressed by id or slug
	adminAPI := api.Group("/admin/restaurants", mid.AuthMiddleware, mid.RequireAdmin)
	adminAPI.GET("", handler.ListRestaurants)
	adminAPI.POST("", handler.CreateRestaurant)
	adminAPI.GET("/:token", handler.GetRestaurant)
	adminAPI.PUT("/:token", handler.UpdateRestaurant)
	adminAPI.DELETE("/:token", handler.DeleteRestaurant)
	adminAPI.POST("/:token/toggle-active", handler.ToggleRestaurantActive)

	// Tenant-scoped resources, admin or the restaurant's own manager
	scoped := api.Group("/restaurants/:slug", mid.AuthMiddleware)

	scoped.GET("/settings", handler.GetSettings)
	scoped.POST("/settings", handler.SaveSettings)
	scoped.POST("/settings/logo", handler.UploadLogo)
	scoped.POST("/settings/barcode_image", handler.UploadBarcodeImage)

	scoped.GET("/categories", handler.ListCategories)
	scoped.POST("/categories", handler.CreateCategory)
	scoped.PUT("/categories/:id", handler.UpdateCategory)
	scoped.DELETE("/categories/:id", handler.DeleteCategory)
	scoped.POST("/categories/:id/image", handler.UploadCategoryImage)

	scoped.GET("/ingredients", handler.ListIngredients)
	scoped.POST("/ingredients", handler.CreateIngredient)
	scoped.PUT("/ingredients/:id", handler.UpdateIngredient)
	scoped.DELETE("/ingredients/:id", handler.DeleteIngredient)
	scoped.POST("/ingredients/:id/image", handler.UploadIngredientImage)

	scoped.GET("/products", handler.ListProducts)
	scoped.POST("/products", handler.CreateProduct)
	scoped.PUT("/products/:id", handler.UpdateProduct)
	scoped.DELETE("/products/:id", handler.DeleteProduct)
	scoped.POST("/products/:id/image", handler.UploadProductImage)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server error", zap.Error(err))
	}
}

// seedAdmin creates the default admin account on first start
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if result := db.Model(&model.User{}).Where("username = ?", cfg.Admin.Username).Count(&count); result.Error != nil {
		return result.Error
	}
	if count > 0 {
		return nil
	}

	hash, err := hashutil.Hash(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := model.User{
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
	}
	return db.Create(&admin).Error
}
