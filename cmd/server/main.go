// @title           EstiloPlus Backend API
// @version         1.0.0
// @description     Backend API for the EstiloPlus virtual try-on marketplace. Handles the product catalog, credit-metered Gemini image generation, Stripe credit purchases and the admin surface.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"estiloplus-backend/docs"
	"estiloplus-backend/internal/config"
	"estiloplus-backend/internal/database"
	"estiloplus-backend/internal/gemini"
	"estiloplus-backend/internal/handlers"
	"estiloplus-backend/internal/middleware"
	"estiloplus-backend/internal/models"
	"estiloplus-backend/internal/payments"
	"estiloplus-backend/internal/services"
	"estiloplus-backend/internal/supabase"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Database client for direct queries, plus migrations
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set. Migrations will be skipped.")
		log.Println("Please set DATABASE_URL with your Supabase PostgreSQL connection string")
	} else {
		var err error
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize database client: %v", err)
			log.Println("Database operations will be limited. Please configure DATABASE_URL properly.")
		} else {
			defer dbClient.Close()

			migrator, err := database.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				log.Printf("Warning: Failed to initialize migrator: %v", err)
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					log.Printf("Warning: Migration failed: %v", err)
				} else {
					log.Println("Migrations completed successfully")
				}
			}
		}
	}

	// Supabase API client (GoTrue admin surface)
	var supabaseClient *supabase.Client
	if cfg.SupabaseURL != "" {
		var err error
		supabaseClient, err = supabase.NewClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Supabase client: %v", err)
		}
	} else {
		log.Println("Warning: SUPABASE_URL not set. Auth admin operations will be skipped.")
	}

	// Storage client for generated images
	var storageClient *supabase.StorageClient
	if cfg.SupabaseURL != "" {
		var err error
		storageClient, err = supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage client: %v", err)
		}
	}

	// Gemini client for try-on composition
	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Image generation will not work.")
	} else {
		var err error
		geminiClient, err = gemini.NewClient(context.Background(), cfg.GeminiAPIKey, gemini.DefaultModel)
		if err != nil {
			log.Printf("Warning: Failed to initialize Gemini client: %v", err)
		} else {
			defer geminiClient.Close()
		}
	}

	// Stripe client for credit purchases
	var paymentsClient *payments.Client
	if cfg.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set. Checkout will not work.")
	} else {
		paymentsClient = payments.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	}

	// Services (only when every dependency is available)
	var generationService *services.GenerationService
	if dbClient != nil && geminiClient != nil && storageClient != nil {
		generationService = services.NewGenerationService(dbClient, geminiClient, storageClient)
	} else {
		log.Println("Warning: Generation service not available.")
	}

	var checkoutService *services.CheckoutService
	if dbClient != nil && paymentsClient != nil {
		checkoutService = services.NewCheckoutService(dbClient, paymentsClient, cfg.BaseURL)
	} else {
		log.Println("Warning: Checkout service not available.")
	}

	// Handlers (dbClient might be nil, handlers handle this)
	configHandler := handlers.NewConfigHandler(cfg)
	productsHandler := handlers.NewProductsHandler(dbClient)
	storesHandler := handlers.NewStoresHandler(dbClient)
	promptsHandler := handlers.NewPromptsHandler(dbClient)
	generateHandler := handlers.NewGenerateHandler(generationService)
	imagesHandler := handlers.NewImagesHandler(dbClient)
	creditsHandler := handlers.NewCreditsHandler(dbClient)
	profileHandler := handlers.NewProfileHandler(dbClient)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg)
	webhookHandler := handlers.NewWebhookHandler(paymentsClient, checkoutService)
	// A nil *DatabaseClient must stay a nil interface so the handler's
	// degraded-mode guard still fires.
	var adminStore handlers.AdminStore
	if dbClient != nil {
		adminStore = dbClient
	}
	adminHandler := handlers.NewAdminHandler(adminStore, supabaseClient)

	// Setup router
	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	router.GET("/health", handlers.HealthHandler)
	router.GET("/api/config", configHandler.GetConfig)
	router.GET("/api/products", productsHandler.ListProducts)
	router.GET("/api/credit-packages", creditsHandler.ListCreditPackages)
	router.GET("/api/stripe/publishable-key", checkoutHandler.GetPublishableKey)

	// Stripe webhook (no auth; signature verified against the raw body)
	router.POST("/api/webhooks/stripe", webhookHandler.HandleStripeWebhook)

	// Authenticated routes
	api := router.Group("/api")
	api.Use(middleware.RequireAuth(cfg, dbClient))

	api.POST("/generate-try-on", generateHandler.TryOn)
	api.POST("/generate-try-on-local", generateHandler.TryOnLocal)
	api.POST("/upload-profile-photo", profileHandler.UploadProfilePhoto)
	api.GET("/generated-images/:userId", imagesHandler.ListGeneratedImages)
	api.GET("/user-credits/:userId", creditsHandler.GetUserCredits)
	api.GET("/purchase-history/:userId", creditsHandler.GetPurchaseHistory)
	api.POST("/create-checkout-session", checkoutHandler.CreateCheckoutSession)
	api.GET("/stores/user/:userId", storesHandler.GetStoreByUser)

	// Store management (store or admin role)
	storeAPI := api.Group("")
	storeAPI.Use(middleware.RequireRole(models.RoleStore, models.RoleAdmin))
	storeAPI.POST("/products", productsHandler.CreateProduct)
	storeAPI.PATCH("/products/:id", productsHandler.UpdateProduct)
	storeAPI.DELETE("/products/:id", productsHandler.DeleteProduct)
	storeAPI.POST("/stores", storesHandler.UpsertStore)
	storeAPI.PATCH("/stores/:id", storesHandler.UpdateStore)

	// Admin surface
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/users/:id/credits", adminHandler.AdjustCredits)
	admin.GET("/stores", adminHandler.ListStores)
	admin.DELETE("/stores/:id", adminHandler.DeleteStore)
	admin.GET("/products", productsHandler.ListProducts)
	admin.DELETE("/products/:id", productsHandler.DeleteProduct)
	admin.GET("/credit-packages", adminHandler.ListPackages)
	admin.POST("/credit-packages", adminHandler.CreatePackage)
	admin.PATCH("/credit-packages/:id", adminHandler.UpdatePackage)
	admin.DELETE("/credit-packages/:id", adminHandler.DeletePackage)
	admin.GET("/stats", adminHandler.GetStats)

	// Prompt templates (admin-gated CRUD)
	prompts := api.Group("/prompts")
	prompts.Use(middleware.RequireRole(models.RoleAdmin))
	prompts.GET("", promptsHandler.ListPrompts)
	prompts.POST("", promptsHandler.CreatePrompt)
	prompts.PATCH("/:id", promptsHandler.UpdatePrompt)
	prompts.DELETE("/:id", promptsHandler.DeletePrompt)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
