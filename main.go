package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"lanari/internal/cache"
	"lanari/internal/config"
	"lanari/internal/database"
	"lanari/internal/handlers"
	"lanari/internal/middleware"
	"lanari/internal/repositories"
	"lanari/internal/services"
	"lanari/internal/shipping"
	"lanari/pkg/metrics"
	"lanari/pkg/rabbitmq"
	"lanari/pkg/storage"
)

const productCacheTTL = 5 * time.Minute

// Deps are the collaborators NewApp wires together. DB and Storage are required;
// a nil Publisher or ProductCache disables events or caching.
type Deps struct {
	DB           *gorm.DB
	Storage      storage.Storage
	Publisher    services.EventPublisher
	ProductCache cache.ProductCache
}

// NewApp builds the Fiber application with every route registered.
func NewApp(cfg *config.Config, deps Deps) (*fiber.App, error) {
	if deps.DB == nil || deps.Storage == nil {
		return nil, fmt.Errorf("database and storage are required")
	}

	// --- Repositories ---
	repos := repositories.NewGORMRepositories(deps.DB)
	tx := repositories.NewGORMTransactor(deps.DB)

	rates := shipping.DefaultRates()
	if cfg.ShippingFreeThreshold > 0 {
		rates.FreeThreshold = cfg.ShippingFreeThreshold
	}

	// --- Services ---
	authService := services.NewAuthService(repos.Users, cfg.JWTSecret, cfg.AdminEmails)
	productService := services.NewProductService(repos.Products, deps.ProductCache)
	cartService := services.NewCartService(repos.Carts, repos.Products, rates)
	checkoutService := services.NewCheckoutService(repos, tx, rates, deps.Publisher)
	orderService := services.NewOrderService(repos.Orders, deps.Publisher)
	paymentService := services.NewPaymentService(tx, deps.Publisher)
	profileService := services.NewProfileService(repos.Profiles)
	mediaService := services.NewMediaService(repos.Media, deps.Storage, cfg.MaxUploadSize)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, cfg.AppEnv == "production")
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	profileHandler := handlers.NewProfileHandler(profileService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: int(cfg.MaxUploadSize) + 1024*1024, // multipart overhead
	})

	// --- Middleware ---
	srvMetrics := metrics.NewServerMetrics("api")
	app.Use(logger.New())
	app.Use(middleware.Metrics(srvMetrics))
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key, X-Cart-Token",
			ExposeHeaders:    "X-Cart-Token",
			AllowCredentials: true,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"env":    cfg.AppEnv,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(srvMetrics.Handler()))
	app.Static("/static/uploads", cfg.UploadDir)

	requireAuth := middleware.AuthRequired(authService)
	optionalAuth := middleware.AuthOptional(authService)
	requireAdmin := middleware.AdminRequired()

	// --- API Routes ---
	api := app.Group(cfg.APIPrefix)
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api, requireAuth)
	paymentHandler.RegisterRoutes(api)
	profileHandler.RegisterRoutes(api, requireAuth)
	mediaHandler.RegisterRoutes(api, optionalAuth, requireAuth, requireAdmin)

	admin := app.Group("/admin/api", requireAuth, requireAdmin)
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	return app, nil
}

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	deps := Deps{DB: db}

	// --- Initialize RabbitMQ Client ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer mqClient.Close()
			deps.Publisher = mqClient
			if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	// --- Redis product cache ---
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Printf("Warning: Redis unavailable, product cache disabled: %v", err)
		} else {
			defer client.Close()
			deps.ProductCache = cache.NewRedisCache(client, productCacheTTL)
		}
	}

	// --- Media storage ---
	if cfg.CloudinaryURL != "" {
		deps.Storage, err = storage.NewCloudinaryStorage(cfg.CloudinaryURL, "lanari")
	} else {
		deps.Storage, err = storage.NewLocalStorage(cfg.UploadDir, "/static/uploads")
	}
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	app, err := NewApp(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting %s on port %s", cfg.AppName, cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}
