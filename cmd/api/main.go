package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/chronica/backend/internal/config"
	"github.com/chronica/backend/internal/handlers"
	"github.com/chronica/backend/internal/middleware"
	"github.com/chronica/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration and fail fast on missing minting-service setup
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize services
	nmkrClient := services.NewNMKRClient(cfg)
	nftService := services.NewNFTService(cfg, nmkrClient, nmkrClient, nmkrClient)
	blockfrostClient := services.NewBlockfrostClient(cfg)
	geocodingService := services.NewGeocodingService(cfg)
	qrService := services.NewQRService(cfg)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))

	// Optional redis-backed rate limiting
	var redisClient *redis.Client
	if cfg.RateLimitEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		router.Use(middleware.RateLimiter(redisClient, cfg))
	}

	// Initialize handlers
	nftHandler := handlers.NewNFTHandler(nftService, nmkrClient, cfg)
	assetHandler := handlers.NewAssetHandler(blockfrostClient, qrService)
	geoHandler := handlers.NewGeoHandler(geocodingService)

	// Health check outside API group (no /api/v1 prefix)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		// Health check also available under /api/v1/health for compatibility
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// NFT creation (tighter per-day cap when redis is available)
		createChain := []gin.HandlerFunc{}
		if redisClient != nil {
			createChain = append(createChain, middleware.UploadRateLimit(redisClient, cfg))
		}
		createChain = append(createChain, nftHandler.CreateNFT)
		api.POST("/nft", createChain...)
		api.GET("/nft/payout-wallets", nftHandler.GetPayoutWallets)

		// Minted asset browsing
		api.GET("/assets", assetHandler.ListAssets)
		api.GET("/assets/:fingerprint/qr.pdf", assetHandler.GetVerificationPDF)

		// Reverse geocoding proxy for the capture UI
		api.GET("/geocode/reverse", geoHandler.ReverseGeocode)
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  120 * time.Second, // 2 min for large media uploads
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
