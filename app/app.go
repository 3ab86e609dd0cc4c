package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"camelia-boutique/app/controller"
	"camelia-boutique/app/router"
	"camelia-boutique/db"
	"camelia-boutique/repository"
	"camelia-boutique/service"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCatalogPath    = "data/catalogue.json"
	defaultDerivativesDir = "public/images/catalog"
	cartTTL               = 7 * 24 * time.Hour
	sessionTTL            = 24 * time.Hour
)

// Initialize wires the storefront application. Redis and Postgres are
// both optional: without REDIS_ADDR carts live in process memory, and
// without database variables the admin sync endpoint reports unavailable.
func Initialize() error {
	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = defaultCatalogPath
	}
	products, err := service.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Printf("✓ Catalog loaded: %d products from %s", len(products), catalogPath)

	// Cart and session persistence
	var cartStore repository.CartStore
	var sessionStore repository.SessionStore
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		cartStore = repository.NewRedisCartStore(client, cartTTL)
		sessionStore = repository.NewRedisSessionStore(client, sessionTTL)
		log.Printf("✓ Using Redis at %s for carts and sessions", redisAddr)
	} else {
		cartStore = repository.NewMemoryCartStore()
		sessionStore = repository.NewMemorySessionStore()
		log.Printf("⚠️  REDIS_ADDR not set, carts are in-memory only")
	}

	// Postgres mirror is optional
	var catalogRepo repository.CatalogRepositoryInterface
	if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != "" {
		if err := db.InitDB(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		catalogRepo = repository.NewCatalogRepository()
	} else {
		log.Printf("⚠️  Database not configured, admin sync disabled")
	}

	whatsappNumber := os.Getenv("WHATSAPP_NUMBER")
	if whatsappNumber == "" {
		return fmt.Errorf("WHATSAPP_NUMBER environment variable is not set")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	derivativesDir := os.Getenv("IMAGE_OUTPUT_DIR")
	if derivativesDir == "" {
		derivativesDir = defaultDerivativesDir
	}

	cartService := service.NewCartService(cartStore, nil)
	checkoutService := service.NewCheckoutService(cartService, whatsappNumber)
	exportService, err := service.NewExportService()
	if err != nil {
		return err
	}
	loader := service.NewImageLoader(service.NewMemoryLoadCache())

	catalogController := controller.NewCatalogController(products)
	controllers := &router.Controllers{
		Catalog:  catalogController,
		Cart:     controller.NewCartController(cartService, sessionStore, catalogController),
		Checkout: controller.NewCheckoutController(checkoutService),
		Image:    controller.NewImageController(loader),
		Admin:    controller.NewAdminController(products, catalogRepo, exportService, baseURL),
	}

	router.SetupRoutes(controllers, derivativesDir)
	return nil
}
