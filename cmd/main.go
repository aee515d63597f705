package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"catalog-service/internal/clients"
	"catalog-service/internal/config"
	"catalog-service/internal/events"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

// @title Manufacturer Catalog API
// @version 1.0.0
// @description Backend for the manufacturer/product catalog dashboard with pipeline-driven extraction
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8081
// @BasePath /api/v1
// @schemes http https

// Global logger
var log *logrus.Logger

func main() {
	// Initialize structured logger
	log = logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	// Check if running health check
	if len(os.Args) > 1 && os.Args[1] == "health" {
		resp, err := http.Get("http://localhost:8081/health")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Warn("Warning: .env file not found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	log.Info("✅ Database connection established successfully")

	// Run database migrations
	if err := runMigrations(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize Redis cache (optional)
	redisClient := initRedis(cfg)

	// Initialize NATS events publisher (no-op when NATS_URL unset)
	publisher := events.NewPublisher(cfg.NatsURL, log)
	defer publisher.Close()

	// Select the pipeline data source. Fixture data keeps the dashboard
	// functional without a provider credential; disable fixtures to get
	// explicit API_KEY_NOT_CONFIGURED responses instead.
	var source clients.PipelineDataSource
	switch {
	case cfg.HasAbacusKey():
		source = clients.NewAbacusClient(cfg.AbacusBaseURL, cfg.AbacusAPIKey, log)
		log.Info("✓ Pipeline provider client initialized")
	case cfg.AbacusUseFixtures:
		source = clients.NewFixtureDataSource()
		log.Warn("Pipeline API key not configured, serving fixture pipeline data")
	default:
		log.Warn("Pipeline API key not configured, pipeline endpoints disabled")
	}

	// Initialize dependencies
	manufacturerRepo := repository.NewManufacturerRepository(db, redisClient)
	productRepo := repository.NewProductRepository(db, redisClient)

	manufacturerService := services.NewManufacturerService(manufacturerRepo, log)
	productService := services.NewProductService(productRepo, manufacturerRepo, log)
	extractionService := services.NewExtractionService(manufacturerRepo, source, publisher, cfg.ProductPipelineID, log)
	pipelineService := services.NewPipelineService(source, cfg.ManufacturerPipelineID, cfg.ProductPipelineID, log)

	manufacturerHandler := handlers.NewManufacturerHandler(manufacturerService, extractionService, cfg.DefaultPageSize, cfg.MaxPageSize)
	productHandler := handlers.NewProductHandler(productService, cfg.DefaultPageSize, cfg.MaxPageSize)
	exportHandler := handlers.NewExportHandler(productService)
	pipelineHandler := handlers.NewPipelineHandler(pipelineService)
	healthHandler := handlers.NewHealthHandler(db)

	// Initialize Gin router
	router := setupRouter(cfg, manufacturerHandler, productHandler, exportHandler, pipelineHandler, healthHandler)

	// Start server
	serverAddr := ":" + cfg.Port
	log.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"db_host":     cfg.DBHost,
		"db_name":     cfg.DBName,
	}).Info("🚀 Catalog Service starting")

	if err := router.Run(serverAddr); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// initRedis connects to Redis when configured; caching is optional and the
// repositories degrade to DB-only reads without it
func initRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, caching disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Invalid REDIS_URL, caching disabled")
		return nil
	}

	client := redis.NewClient(opts)
	log.Info("✓ Redis cache initialized")
	return client
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	log.Info("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Manufacturer{},
		&models.Product{},
		&models.SearchHistory{},
	); err != nil {
		return err
	}

	log.Info("✅ Database migrations completed successfully")
	return nil
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(cfg *config.Config, manufacturerHandler *handlers.ManufacturerHandler, productHandler *handlers.ProductHandler, exportHandler *handlers.ExportHandler, pipelineHandler *handlers.PipelineHandler, healthHandler *handlers.HealthHandler) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Metrics())

	// Health check endpoints
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	api := router.Group("/api/v1")

	manufacturers := api.Group("/manufacturers")
	{
		manufacturers.GET("", manufacturerHandler.ListManufacturers)
		manufacturers.POST("", manufacturerHandler.CreateManufacturer)
		manufacturers.GET("/:id", manufacturerHandler.GetManufacturer)
		manufacturers.PATCH("/:id", manufacturerHandler.UpdateManufacturer)
		manufacturers.DELETE("/:id", manufacturerHandler.DeleteManufacturer)

		// Extraction workflow
		manufacturers.POST("/:id/extract", manufacturerHandler.TriggerExtraction)
		manufacturers.GET("/:id/extract", manufacturerHandler.GetExtractionStatus)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.POST("", productHandler.CreateProduct)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/export", exportHandler.ExportProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	pipelines := api.Group("/pipelines")
	{
		pipelines.GET("", pipelineHandler.GetPipelinesOverview)
		pipelines.GET("/:pipelineId", pipelineHandler.GetPipeline)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
